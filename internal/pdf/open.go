package pdf

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// maxResourceDepth bounds how deep form XObject resources are loaded.
const maxResourceDepth = 4

func init() {
	// pdfcpu otherwise installs a config.yml under the user config dir and
	// exits the process if it cannot.
	model.ConfigPath = "disable"
}

// Open reads the PDF at path and lays out the text of every page.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f, path)
}

// Read lays out a PDF from rs. name is recorded as the document path.
func Read(rs io.ReadSeeker, name string) (*Document, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadValidateAndOptimize(rs, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}
	if ctx.PageCount == 0 {
		return nil, ErrNoPages
	}

	r := &reader{
		ctx:   ctx,
		fonts: make(map[int]*Font),
		forms: make(map[int]*XObject),
	}

	doc := &Document{Path: name, Pages: make([]Page, 0, ctx.PageCount)}
	for nr := 1; nr <= ctx.PageCount; nr++ {
		page, err := r.page(nr)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", nr, err)
		}
		doc.Pages = append(doc.Pages, page)
	}

	return doc, nil
}

// reader resolves page resources against a pdfcpu context. Fonts and forms
// are shared between pages, so they are cached by object number.
type reader struct {
	ctx   *model.Context
	fonts map[int]*Font
	forms map[int]*XObject
}

func (r *reader) page(nr int) (Page, error) {
	page := Page{Index: nr - 1}

	d, _, inh, err := r.ctx.PageDict(nr, true)
	if err != nil {
		return page, err
	}

	var resDict types.Dict
	if inh != nil && inh.Resources != nil {
		resDict = inh.Resources
	} else if o, found := d.Find("Resources"); found {
		if resDict, err = r.ctx.DereferenceDict(o); err != nil {
			return page, fmt.Errorf("resources: %w", err)
		}
	}

	content, err := pdfcpu.ExtractPageContent(r.ctx, nr)
	if err != nil {
		return page, fmt.Errorf("page content: %w", err)
	}
	if content == nil {
		return page, nil
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return page, fmt.Errorf("reading content: %w", err)
	}

	blocks, err := Interpret(data, r.resources(resDict, 0))
	if err != nil {
		return page, err
	}
	page.Blocks = blocks
	return page, nil
}

func (r *reader) resources(d types.Dict, depth int) *Resources {
	res := &Resources{
		Fonts:    make(map[string]*Font),
		XObjects: make(map[string]*XObject),
	}
	if d == nil {
		return res
	}

	if o, found := d.Find("Font"); found {
		if fd, err := r.ctx.DereferenceDict(o); err == nil {
			for name, ref := range fd {
				if f := r.font(ref); f != nil {
					res.Fonts[name] = f
				}
			}
		}
	}

	if o, found := d.Find("XObject"); found {
		if xd, err := r.ctx.DereferenceDict(o); err == nil {
			for name, ref := range xd {
				if x := r.xobject(ref, depth); x != nil {
					res.XObjects[name] = x
				}
			}
		}
	}

	return res
}

func (r *reader) font(o types.Object) *Font {
	key, cacheable := objNr(o)
	if cacheable {
		if f, ok := r.fonts[key]; ok {
			return f
		}
	}

	fd, err := r.ctx.DereferenceDict(o)
	if err != nil || fd == nil {
		return nil
	}

	f := &Font{}
	if name := fd.NameEntry("BaseFont"); name != nil {
		f.Name = stripSubset(*name)
	}
	if sub := fd.NameEntry("Subtype"); sub != nil && *sub == "Type0" {
		f.TwoByte = true
	}
	f.encoding = r.baseEncoding(fd)

	desc := r.descriptor(fd, f.TwoByte)
	var descFlags int
	var weight, angle float64
	if desc != nil {
		if v := desc.IntEntry("Flags"); v != nil {
			descFlags = *v
		}
		weight = r.number(desc, "FontWeight")
		angle = r.number(desc, "ItalicAngle")
	}
	f.Flags = fontFlags(f.Name, descFlags, weight, angle)

	if tu, found := fd.Find("ToUnicode"); found {
		if sd, _, err := r.ctx.DereferenceStreamDict(tu); err == nil && sd != nil {
			if err := sd.Decode(); err == nil {
				if cm, err := parseToUnicode(sd.Content); err == nil {
					f.toUnicode = cm
				}
			}
		}
	}

	if cacheable {
		r.fonts[key] = f
	}
	return f
}

// descriptor returns the font descriptor, which composite fonts keep on
// their descendant font.
func (r *reader) descriptor(fd types.Dict, composite bool) types.Dict {
	if composite {
		o, found := fd.Find("DescendantFonts")
		if !found {
			return nil
		}
		arr, err := r.ctx.DereferenceArray(o)
		if err != nil || len(arr) == 0 {
			return nil
		}
		if fd, err = r.ctx.DereferenceDict(arr[0]); err != nil || fd == nil {
			return nil
		}
	}

	o, found := fd.Find("FontDescriptor")
	if !found {
		return nil
	}
	desc, err := r.ctx.DereferenceDict(o)
	if err != nil {
		return nil
	}
	return desc
}

func (r *reader) baseEncoding(fd types.Dict) encoding.Encoding {
	o, found := fd.Find("Encoding")
	if !found {
		return nil
	}
	o, err := r.ctx.Dereference(o)
	if err != nil {
		return nil
	}
	switch v := o.(type) {
	case types.Name:
		return encodingByName(string(v))
	case types.Dict:
		if base := v.NameEntry("BaseEncoding"); base != nil {
			return encodingByName(*base)
		}
	}
	return nil
}

func (r *reader) xobject(o types.Object, depth int) *XObject {
	key, cacheable := objNr(o)
	if cacheable {
		if x, ok := r.forms[key]; ok {
			return x
		}
	}

	sd, _, err := r.ctx.DereferenceStreamDict(o)
	if err != nil || sd == nil {
		return nil
	}

	sub := sd.NameEntry("Subtype")
	if sub == nil {
		return nil
	}

	switch *sub {
	case "Image":
		return &XObject{Image: true}
	case "Form":
		if depth >= maxResourceDepth {
			return nil
		}
		x := &XObject{Matrix: identity}
		if cacheable {
			// Registered before loading so self-referencing forms resolve.
			r.forms[key] = x
		}
		if err := sd.Decode(); err == nil {
			x.Content = sd.Content
		}
		if mo, found := sd.Find("Matrix"); found {
			if arr, err := r.ctx.DereferenceArray(mo); err == nil && len(arr) == 6 {
				for i, v := range arr {
					x.Matrix[i] = r.toNumber(v)
				}
			}
		}
		var resDict types.Dict
		if ro, found := sd.Find("Resources"); found {
			resDict, _ = r.ctx.DereferenceDict(ro)
		}
		x.Resources = r.resources(resDict, depth+1)
		return x
	}

	return nil
}

func (r *reader) number(d types.Dict, key string) float64 {
	o, found := d.Find(key)
	if !found {
		return 0
	}
	return r.toNumber(o)
}

func (r *reader) toNumber(o types.Object) float64 {
	o, err := r.ctx.Dereference(o)
	if err != nil {
		return 0
	}
	switch v := o.(type) {
	case types.Integer:
		return float64(v)
	case types.Float:
		return float64(v)
	}
	return 0
}

func objNr(o types.Object) (int, bool) {
	ir, ok := o.(types.IndirectRef)
	if !ok {
		return 0, false
	}
	return int(ir.ObjectNumber), true
}
