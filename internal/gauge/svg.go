package gauge

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

const svgNamespace = "http://www.w3.org/2000/svg"

type document struct {
	XMLName   xml.Name `xml:"svg"`
	Xmlns     string   `xml:"xmlns,attr"`
	Width     string   `xml:"width,attr"`
	Height    string   `xml:"height,attr"`
	ViewBox   string   `xml:"viewBox,attr"`
	Role      string   `xml:"role,attr,omitempty"`
	AriaLabel string   `xml:"aria-label,attr,omitempty"`
	Title     string   `xml:"title,omitempty"`
	Defs      *defs    `xml:"defs,omitempty"`
	Groups    []group
}

type defs struct {
	Gradients []linearGradient
}

type linearGradient struct {
	XMLName xml.Name `xml:"linearGradient"`
	ID      string   `xml:"id,attr"`
	X1      string   `xml:"x1,attr"`
	Y1      string   `xml:"y1,attr"`
	X2      string   `xml:"x2,attr"`
	Y2      string   `xml:"y2,attr"`
	Stops   []stop
}

type stop struct {
	XMLName   xml.Name `xml:"stop"`
	Offset    string   `xml:"offset,attr"`
	StopColor string   `xml:"stop-color,attr"`
}

type group struct {
	XMLName   xml.Name `xml:"g"`
	Class     string   `xml:"class,attr,omitempty"`
	DataName  string   `xml:"data-name,attr,omitempty"`
	Transform string   `xml:"transform,attr,omitempty"`
	Opacity   string   `xml:"opacity,attr,omitempty"`
	Circles   []circle
	Rects     []rect
	Lines     []line
	Texts     []text
}

type circle struct {
	XMLName          xml.Name `xml:"circle"`
	Class            string   `xml:"class,attr,omitempty"`
	DataName         string   `xml:"data-name,attr,omitempty"`
	Cx               string   `xml:"cx,attr"`
	Cy               string   `xml:"cy,attr"`
	R                string   `xml:"r,attr"`
	Fill             string   `xml:"fill,attr"`
	Stroke           string   `xml:"stroke,attr,omitempty"`
	StrokeWidth      string   `xml:"stroke-width,attr,omitempty"`
	StrokeDasharray  string   `xml:"stroke-dasharray,attr,omitempty"`
	StrokeDashoffset string   `xml:"stroke-dashoffset,attr,omitempty"`
	StrokeLinecap    string   `xml:"stroke-linecap,attr,omitempty"`
	Transform        string   `xml:"transform,attr,omitempty"`
	Opacity          string   `xml:"opacity,attr,omitempty"`
	Animate          *animate
}

type animate struct {
	XMLName       xml.Name `xml:"animate"`
	AttributeName string   `xml:"attributeName,attr"`
	From          string   `xml:"from,attr"`
	To            string   `xml:"to,attr"`
	Dur           string   `xml:"dur,attr"`
	Fill          string   `xml:"fill,attr"`
}

type rect struct {
	XMLName xml.Name `xml:"rect"`
	X       string   `xml:"x,attr"`
	Y       string   `xml:"y,attr"`
	Width   string   `xml:"width,attr"`
	Height  string   `xml:"height,attr"`
	Rx      string   `xml:"rx,attr,omitempty"`
	Fill    string   `xml:"fill,attr"`
}

type line struct {
	XMLName       xml.Name `xml:"line"`
	Class         string   `xml:"class,attr,omitempty"`
	X1            string   `xml:"x1,attr"`
	Y1            string   `xml:"y1,attr"`
	X2            string   `xml:"x2,attr"`
	Y2            string   `xml:"y2,attr"`
	Stroke        string   `xml:"stroke,attr"`
	StrokeWidth   string   `xml:"stroke-width,attr"`
	StrokeLinecap string   `xml:"stroke-linecap,attr,omitempty"`
	Transform     string   `xml:"transform,attr,omitempty"`
}

type text struct {
	XMLName          xml.Name `xml:"text"`
	Class            string   `xml:"class,attr,omitempty"`
	X                string   `xml:"x,attr"`
	Y                string   `xml:"y,attr"`
	Fill             string   `xml:"fill,attr,omitempty"`
	FontSize         string   `xml:"font-size,attr,omitempty"`
	FontWeight       string   `xml:"font-weight,attr,omitempty"`
	TextAnchor       string   `xml:"text-anchor,attr,omitempty"`
	DominantBaseline string   `xml:"dominant-baseline,attr,omitempty"`
	Opacity          string   `xml:"opacity,attr,omitempty"`
	Content          string   `xml:",chardata"`
}

func newDocument(width, height float64) document {
	return document{
		Xmlns:   svgNamespace,
		Width:   num(width),
		Height:  num(height),
		ViewBox: fmt.Sprintf("0 0 %s %s", num(width), num(height)),
	}
}

func encode(w io.Writer, doc document) error {
	enc := xml.NewEncoder(w)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode svg: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush svg: %w", err)
	}
	return nil
}

func encodeString(doc document) (string, error) {
	var buf bytes.Buffer
	if err := encode(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func rotate(deg, cx, cy float64) string {
	return fmt.Sprintf("rotate(%s %s %s)", num(deg), num(cx), num(cy))
}
