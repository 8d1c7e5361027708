package parser

import (
	"strings"

	"github.com/jhendrix/webparse/parser/dom"
)

// mathMLTextIntegrationPoints are the MathML elements whose children are
// parsed with the regular HTML rules for most tokens.
var mathMLTextIntegrationPoints = map[string]bool{
	"mi": true, "mo": true, "mn": true, "ms": true, "mtext": true,
}

func (c *treeConstructor) isMathMLTextIntegrationPoint(ref dom.NodeRef) bool {
	n := c.node(ref)
	return n.Namespace == dom.MathMLNamespace && mathMLTextIntegrationPoints[n.Tag]
}

func (c *treeConstructor) isHTMLIntegrationPoint(ref dom.NodeRef) bool {
	n := c.node(ref)
	switch n.Namespace {
	case dom.MathMLNamespace:
		if n.Tag != "annotation-xml" {
			return false
		}
		enc, ok := n.Attr("encoding")
		return ok && (strings.EqualFold(enc, "text/html") || strings.EqualFold(enc, "application/xhtml+xml"))
	case dom.SVGNamespace:
		switch n.Tag {
		case "foreignObject", "desc", "title":
			return true
		}
	}
	return false
}

// useForeignRules decides whether the current token is handled by the
// foreign content rules instead of the insertion mode dispatcher.
func (c *treeConstructor) useForeignRules(t *Token) bool {
	if len(c.oe) == 0 {
		return false
	}
	acn := c.adjustedCurrentNode()
	if !acn.Valid() || c.node(acn).Namespace == dom.HTMLNamespace {
		return false
	}
	if t.Type == endOfFileToken {
		return false
	}
	if c.isMathMLTextIntegrationPoint(acn) {
		if t.Type == characterToken {
			return false
		}
		if t.Type == startTagToken && t.TagName != "mglyph" && t.TagName != "malignmark" {
			return false
		}
	}
	if c.node(acn).Namespace == dom.MathMLNamespace && c.node(acn).Tag == "annotation-xml" &&
		t.Type == startTagToken && t.TagName == "svg" {
		return false
	}
	if c.isHTMLIntegrationPoint(acn) && (t.Type == startTagToken || t.Type == characterToken) {
		return false
	}
	return true
}

// foreignBreakout lists the HTML start tags that abandon foreign content
// and reprocess in the current insertion mode.
var foreignBreakout = map[string]bool{
	"b": true, "big": true, "blockquote": true, "body": true, "br": true,
	"center": true, "code": true, "dd": true, "div": true, "dl": true,
	"dt": true, "em": true, "embed": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "head": true,
	"hr": true, "i": true, "img": true, "li": true, "listing": true,
	"menu": true, "meta": true, "nobr": true, "ol": true, "p": true,
	"pre": true, "ruby": true, "s": true, "small": true, "span": true,
	"strong": true, "strike": true, "sub": true, "sup": true,
	"table": true, "tt": true, "u": true, "ul": true, "var": true,
}

func (c *treeConstructor) foreignContentHandler(t *Token) bool {
	switch t.Type {
	case characterToken:
		if t.Data == "\u0000" {
			c.err(t, ErrUnexpectedNullCharacter)
			rep := *t
			rep.Data = "\uFFFD"
			c.insertCharacter(&rep)
			return false
		}
		c.insertCharacter(t)
		if !t.isWhitespace() {
			c.framesetOK = false
		}
		return false
	case commentToken:
		c.insertComment(t)
		return false
	case doctypeToken:
		c.err(t, ErrUnexpectedDoctype)
		return false
	case startTagToken:
		breakout := foreignBreakout[t.TagName]
		if t.TagName == "font" {
			_, hasColor := t.Attr("color")
			_, hasFace := t.Attr("face")
			_, hasSize := t.Attr("size")
			breakout = hasColor || hasFace || hasSize
		}
		if breakout {
			c.err(t, ErrUnexpectedStartTag)
			for len(c.oe) > 0 {
				cur := c.currentNode()
				if c.node(cur).Namespace == dom.HTMLNamespace ||
					c.isMathMLTextIntegrationPoint(cur) || c.isHTMLIntegrationPoint(cur) {
					break
				}
				c.pop()
			}
			return true
		}
		ns := c.node(c.adjustedCurrentNode()).Namespace
		if ns == dom.MathMLNamespace {
			adjustMathMLAttributes(t)
		}
		if ns == dom.SVGNamespace {
			if fixed, ok := svgTagNameAdjustments[t.TagName]; ok {
				t.TagName = fixed
			}
			adjustSVGAttributes(t)
		}
		adjustForeignAttributes(t)
		c.insertForeignElement(t, ns)
		if t.SelfClosing {
			c.pop()
		}
		return false
	case endTagToken:
		if len(c.oe) == 0 {
			return false
		}
		i := len(c.oe) - 1
		node := c.oe[i]
		if !strings.EqualFold(c.node(node).Tag, t.TagName) {
			c.err(t, ErrUnexpectedEndTag)
		}
		for {
			if i == 0 {
				return false
			}
			if strings.EqualFold(c.node(node).Tag, t.TagName) {
				c.popUntilRef(node)
				return false
			}
			i--
			node = c.oe[i]
			if c.node(node).Namespace == dom.HTMLNamespace {
				break
			}
		}
		// An HTML ancestor takes the token through the regular rules.
		return true
	}
	return false
}

// svgTagNameAdjustments restores the mixed-case SVG tag names that the
// tokenizer lowercased.
var svgTagNameAdjustments = map[string]string{
	"altglyph":            "altGlyph",
	"altglyphdef":         "altGlyphDef",
	"altglyphitem":        "altGlyphItem",
	"animatecolor":        "animateColor",
	"animatemotion":       "animateMotion",
	"animatetransform":    "animateTransform",
	"clippath":            "clipPath",
	"feblend":             "feBlend",
	"fecolormatrix":       "feColorMatrix",
	"fecomponenttransfer": "feComponentTransfer",
	"fecomposite":         "feComposite",
	"feconvolvematrix":    "feConvolveMatrix",
	"fediffuselighting":   "feDiffuseLighting",
	"fedisplacementmap":   "feDisplacementMap",
	"fedistantlight":      "feDistantLight",
	"fedropshadow":        "feDropShadow",
	"feflood":             "feFlood",
	"fefunca":             "feFuncA",
	"fefuncb":             "feFuncB",
	"fefuncg":             "feFuncG",
	"fefuncr":             "feFuncR",
	"fegaussianblur":      "feGaussianBlur",
	"feimage":             "feImage",
	"femerge":             "feMerge",
	"femergenode":         "feMergeNode",
	"femorphology":        "feMorphology",
	"feoffset":            "feOffset",
	"fepointlight":        "fePointLight",
	"fespecularlighting":  "feSpecularLighting",
	"fespotlight":         "feSpotLight",
	"fetile":              "feTile",
	"feturbulence":        "feTurbulence",
	"foreignobject":       "foreignObject",
	"glyphref":            "glyphRef",
	"lineargradient":      "linearGradient",
	"radialgradient":      "radialGradient",
	"textpath":            "textPath",
}

var svgAttrAdjustments = map[string]string{
	"attributename":             "attributeName",
	"attributetype":             "attributeType",
	"basefrequency":             "baseFrequency",
	"baseprofile":               "baseProfile",
	"calcmode":                  "calcMode",
	"clippathunits":             "clipPathUnits",
	"diffuseconstant":           "diffuseConstant",
	"edgemode":                  "edgeMode",
	"filterunits":               "filterUnits",
	"glyphref":                  "glyphRef",
	"gradienttransform":         "gradientTransform",
	"gradientunits":             "gradientUnits",
	"kernelmatrix":              "kernelMatrix",
	"kernelunitlength":          "kernelUnitLength",
	"keypoints":                 "keyPoints",
	"keysplines":                "keySplines",
	"keytimes":                  "keyTimes",
	"lengthadjust":              "lengthAdjust",
	"limitingconeangle":         "limitingConeAngle",
	"markerheight":              "markerHeight",
	"markerunits":               "markerUnits",
	"markerwidth":               "markerWidth",
	"maskcontentunits":          "maskContentUnits",
	"maskunits":                 "maskUnits",
	"numoctaves":                "numOctaves",
	"pathlength":                "pathLength",
	"patterncontentunits":       "patternContentUnits",
	"patterntransform":          "patternTransform",
	"patternunits":              "patternUnits",
	"pointsatx":                 "pointsAtX",
	"pointsaty":                 "pointsAtY",
	"pointsatz":                 "pointsAtZ",
	"preservealpha":             "preserveAlpha",
	"preserveaspectratio":       "preserveAspectRatio",
	"primitiveunits":            "primitiveUnits",
	"refx":                      "refX",
	"refy":                      "refY",
	"repeatcount":               "repeatCount",
	"repeatdur":                 "repeatDur",
	"requiredextensions":        "requiredExtensions",
	"requiredfeatures":          "requiredFeatures",
	"specularconstant":          "specularConstant",
	"specularexponent":          "specularExponent",
	"spreadmethod":              "spreadMethod",
	"startoffset":               "startOffset",
	"stddeviation":              "stdDeviation",
	"stitchtiles":               "stitchTiles",
	"surfacescale":              "surfaceScale",
	"systemlanguage":            "systemLanguage",
	"tablevalues":               "tableValues",
	"targetx":                   "targetX",
	"targety":                   "targetY",
	"textlength":                "textLength",
	"viewbox":                   "viewBox",
	"viewtarget":                "viewTarget",
	"xchannelselector":          "xChannelSelector",
	"ychannelselector":          "yChannelSelector",
	"zoomandpan":                "zoomAndPan",
}

func adjustMathMLAttributes(t *Token) {
	for i := range t.Attributes {
		if t.Attributes[i].Name == "definitionurl" {
			t.Attributes[i].Name = "definitionURL"
		}
	}
}

func adjustSVGAttributes(t *Token) {
	for i := range t.Attributes {
		if fixed, ok := svgAttrAdjustments[t.Attributes[i].Name]; ok {
			t.Attributes[i].Name = fixed
		}
	}
}

// foreignAttrAdjustments maps the xlink, xml and xmlns prefixed attribute
// names onto their namespaces.
var foreignAttrAdjustments = map[string]struct {
	prefix string
	local  string
	ns     dom.Namespace
}{
	"xlink:actuate": {"xlink", "actuate", dom.XLinkNamespace},
	"xlink:arcrole": {"xlink", "arcrole", dom.XLinkNamespace},
	"xlink:href":    {"xlink", "href", dom.XLinkNamespace},
	"xlink:role":    {"xlink", "role", dom.XLinkNamespace},
	"xlink:show":    {"xlink", "show", dom.XLinkNamespace},
	"xlink:title":   {"xlink", "title", dom.XLinkNamespace},
	"xlink:type":    {"xlink", "type", dom.XLinkNamespace},
	"xml:lang":      {"xml", "lang", dom.XMLNamespace},
	"xml:space":     {"xml", "space", dom.XMLNamespace},
	"xmlns":         {"", "xmlns", dom.XMLNSNamespace},
	"xmlns:xlink":   {"xmlns", "xlink", dom.XMLNSNamespace},
}

func adjustForeignAttributes(t *Token) {
	for i := range t.Attributes {
		if adj, ok := foreignAttrAdjustments[t.Attributes[i].Name]; ok {
			t.Attributes[i].Name = adj.local
			t.Attributes[i].Prefix = adj.prefix
			t.Attributes[i].Namespace = adj.ns
		}
	}
}
