package document

import (
	"fmt"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/tsawler/pdftitle/font"
)

// loadResources fills in the page's fonts and graphics-state fonts.
// Entries that cannot be resolved are recorded in page.ResourceErrors.
func (d *Document) loadResources(page *Page, resources types.Dict) {
	if obj, found := resources.Find("Font"); found {
		fonts, err := d.dict(obj)
		if err != nil {
			page.ResourceErrors = append(page.ResourceErrors, fmt.Errorf("/Font resources: %w", err))
		}
		for _, name := range sortedKeys(fonts) {
			res, err := d.fontResource(fonts[name])
			if err != nil {
				page.ResourceErrors = append(page.ResourceErrors, fmt.Errorf("font /%s: %w", name, err))
				continue
			}
			page.Fonts[name] = res
		}
	}

	if obj, found := resources.Find("ExtGState"); found {
		states, err := d.dict(obj)
		if err != nil {
			page.ResourceErrors = append(page.ResourceErrors, fmt.Errorf("/ExtGState resources: %w", err))
		}
		for _, name := range sortedKeys(states) {
			gs, ok, err := d.graphicsStateFont(states[name])
			if err != nil {
				page.ResourceErrors = append(page.ResourceErrors, fmt.Errorf("graphics state /%s: %w", name, err))
				continue
			}
			if ok {
				page.GraphicsStates[name] = gs
			}
		}
	}
}

// fontResource resolves a font dictionary into the parts needed for text
// decoding.
func (d *Document) fontResource(obj types.Object) (font.Resource, error) {
	dict, err := d.dict(obj)
	if err != nil {
		return font.Resource{}, err
	}
	if dict == nil {
		return font.Resource{}, fmt.Errorf("missing font dictionary")
	}

	var res font.Resource
	if name, ok := d.name(dict, "Name"); ok {
		res.Name = name
	} else if name, ok := d.name(dict, "BaseFont"); ok {
		res.Name = name
	}

	if obj, found := dict.Find("ToUnicode"); found {
		data, err := d.stream(obj)
		if err != nil {
			return font.Resource{}, fmt.Errorf("ToUnicode: %w", err)
		}
		res.ToUnicode = data
	}

	if obj, found := dict.Find("Encoding"); found {
		enc, err := d.encoding(obj)
		if err != nil {
			return font.Resource{}, fmt.Errorf("Encoding: %w", err)
		}
		res.Encoding = enc
	}

	return res, nil
}

// encoding resolves an /Encoding entry, which is either a base encoding
// name or a dictionary with /BaseEncoding and /Differences.
func (d *Document) encoding(obj types.Object) (*font.EncodingSpec, error) {
	obj, err := d.ctx.Dereference(obj)
	if err != nil {
		return nil, err
	}

	switch o := obj.(type) {
	case types.Name:
		return &font.EncodingSpec{BaseEncoding: string(o)}, nil

	case types.Dict:
		spec := &font.EncodingSpec{}
		if name, ok := d.name(o, "BaseEncoding"); ok {
			spec.BaseEncoding = name
		}
		if diffs, found := o.Find("Differences"); found {
			arr, err := d.array(diffs)
			if err != nil {
				return nil, fmt.Errorf("Differences: %w", err)
			}
			spec.Differences = d.differences(arr)
		}
		return spec, nil

	case nil:
		return nil, nil
	}

	return nil, fmt.Errorf("unexpected encoding type %T", obj)
}

// differences reads a /Differences array: each number gives the code of
// the glyph name that follows it, and later names take consecutive codes.
func (d *Document) differences(arr types.Array) map[byte]string {
	out := make(map[byte]string)
	code := -1
	for _, item := range arr {
		item, err := d.ctx.Dereference(item)
		if err != nil {
			continue
		}
		switch v := item.(type) {
		case types.Integer:
			code = int(v)
		case types.Float:
			code = int(v)
		case types.Name:
			if code >= 0 && code <= 255 {
				out[byte(code)] = string(v)
			}
			if code >= 0 {
				code++
			}
		}
	}
	return out
}

// graphicsStateFont reads the /Font entry of an ExtGState dictionary, an
// array of a font reference and a size. ok is false when the state sets
// no font.
func (d *Document) graphicsStateFont(obj types.Object) (gs font.GraphicsStateFont, ok bool, err error) {
	dict, err := d.dict(obj)
	if err != nil || dict == nil {
		return gs, false, err
	}

	entry, found := dict.Find("Font")
	if !found {
		return gs, false, nil
	}
	arr, err := d.array(entry)
	if err != nil {
		return gs, false, fmt.Errorf("Font: %w", err)
	}
	if len(arr) != 2 {
		return gs, false, fmt.Errorf("Font: expected [font size], got %d elements", len(arr))
	}

	res, err := d.fontResource(arr[0])
	if err != nil {
		return gs, false, fmt.Errorf("Font: %w", err)
	}
	size, ok := d.number(arr[1])
	if !ok {
		return gs, false, fmt.Errorf("Font: size is not a number")
	}

	return font.GraphicsStateFont{Font: res, Size: size}, true, nil
}

// stream dereferences obj and returns its decoded content.
func (d *Document) stream(obj types.Object) ([]byte, error) {
	obj, err := d.ctx.Dereference(obj)
	if err != nil {
		return nil, err
	}
	sd, ok := obj.(types.StreamDict)
	if !ok {
		return nil, fmt.Errorf("expected stream, got %T", obj)
	}
	return decodeStream(sd)
}

func (d *Document) array(obj types.Object) (types.Array, error) {
	obj, err := d.ctx.Dereference(obj)
	if err != nil {
		return nil, err
	}
	arr, ok := obj.(types.Array)
	if !ok {
		return nil, fmt.Errorf("expected array, got %T", obj)
	}
	return arr, nil
}

func (d *Document) name(dict types.Dict, key string) (string, bool) {
	obj, found := dict.Find(key)
	if !found {
		return "", false
	}
	obj, err := d.ctx.Dereference(obj)
	if err != nil {
		return "", false
	}
	name, ok := obj.(types.Name)
	return string(name), ok
}

func (d *Document) number(obj types.Object) (float64, bool) {
	obj, err := d.ctx.Dereference(obj)
	if err != nil {
		return 0, false
	}
	switch v := obj.(type) {
	case types.Integer:
		return float64(v), true
	case types.Float:
		return float64(v), true
	}
	return 0, false
}

func sortedKeys(dict types.Dict) []string {
	keys := make([]string, 0, len(dict))
	for k := range dict {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
