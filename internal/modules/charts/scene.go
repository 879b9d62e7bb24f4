package charts

// Margin is the space between the outer frame and the plot area
type Margin struct {
	Top, Right, Bottom, Left int
}

// Orientation says which side of the plot an axis sits on
type Orientation string

const (
	OrientBottom Orientation = "bottom"
	OrientLeft   Orientation = "left"
)

// Tick is one labelled position along an axis
type Tick struct {
	Pos   float64 `json:"pos"`
	Label string  `json:"label"`
}

// Axis describes a rendered axis
type Axis struct {
	Orient Orientation `json:"orient"`
	Domain string      `json:"domain"` // path data of the axis line
	Ticks  []Tick      `json:"ticks"`
}

// Path is a polyline through plotted points
type Path struct {
	Class       string  `json:"class"`
	D           string  `json:"d"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"stroke_width"`
	Dash        string  `json:"dash,omitempty"`
}

// Marker is one plotted record with the data its tooltip shows
type Marker struct {
	CX    float64 `json:"cx"`
	CY    float64 `json:"cy"`
	R     float64 `json:"r"`
	Fill  string  `json:"fill"`
	Stock string  `json:"stock"`
	Date  string  `json:"date"`
	Price string  `json:"price"`
}

// Scene is the complete visual description of one chart. Rendering a scene
// always replaces whatever was drawn before.
type Scene struct {
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	Margin      Margin   `json:"margin"`
	InnerWidth  float64  `json:"inner_width"`
	InnerHeight float64  `json:"inner_height"`
	XAxis       Axis     `json:"x_axis"`
	YAxis       Axis     `json:"y_axis"`
	Line        *Path    `json:"line,omitempty"`    // nil for an empty view
	Overlay     *Path    `json:"overlay,omitempty"` // moving average, when requested
	Markers     []Marker `json:"markers"`
	Caption     string   `json:"caption,omitempty"` // shown instead of data
}

// Empty reports whether the scene plots no records
func (s *Scene) Empty() bool {
	return len(s.Markers) == 0
}
