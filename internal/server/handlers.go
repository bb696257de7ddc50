package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ironsheep/pixel-engine-mcp/internal/codec"
	"github.com/ironsheep/pixel-engine-mcp/internal/imaging"
	"github.com/ironsheep/pixel-engine-mcp/internal/script"
	"github.com/ironsheep/pixel-engine-mcp/internal/workspace"
)

// ErrMissingArgument is returned when a required tool argument is empty.
var ErrMissingArgument = errors.New("missing required argument")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_filter").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		debugf("Tool %s failed: %v", params.Name, err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Resolves workspace images by name
//  4. Calls the engine and stores the result
//  5. Returns a summary of the result or an error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Workspace
	case "image_load":
		return s.handleImageLoad(args)
	case "image_save":
		return s.handleImageSave(args)
	case "image_info":
		return s.handleImageInfo(args)
	case "image_list":
		return s.handleImageList(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	// Point operations
	case "image_brighten":
		return s.handleImageBrightness(args, imaging.Brighten)
	case "image_darken":
		return s.handleImageBrightness(args, imaging.Darken)
	case "image_flip":
		return s.handleImageFlip(args)
	case "image_component":
		return s.handleImageComponent(args)
	case "image_rgb_split":
		return s.handleImageRGBSplit(args)
	case "image_rgb_combine":
		return s.handleImageRGBCombine(args)

	// Filters
	case "image_filter":
		return s.handleImageFilter(args)
	case "image_histogram":
		return s.handleImageHistogram(args)
	case "image_levels_adjust":
		return s.handleImageLevelsAdjust(args)
	case "image_compress":
		return s.handleImageCompress(args)
	case "image_downscale":
		return s.handleImageDownscale(args)
	case "image_partial":
		return s.handleImagePartial(args)

	// Batch
	case "image_run_script":
		return s.handleImageRunScript(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments; absent arguments leave v untouched.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func requireArgs(fields map[string]string) error {
	for field, value := range fields {
		if value == "" {
			return fmt.Errorf("%s: %w", field, ErrMissingArgument)
		}
	}
	return nil
}

// ImageResult summarises a workspace image.
type ImageResult struct {
	Name        string `json:"name"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Fingerprint string `json:"fingerprint"`
}

func newImageResult(name string, g *imaging.Grid) *ImageResult {
	return &ImageResult{
		Name:        name,
		Width:       g.Width(),
		Height:      g.Height(),
		Fingerprint: workspace.Fingerprint(g),
	}
}

// storeResult registers g under dest (or a generated name) and summarises it.
func (s *Server) storeResult(dest string, g *imaging.Grid) (*ImageResult, error) {
	name, err := s.store.Put(dest, g)
	if err != nil {
		return nil, err
	}
	debugf("Stored %s (%dx%d)", name, g.Width(), g.Height())
	return newImageResult(name, g), nil
}

// transform runs op on the source image and stores the output under dest.
func (s *Server) transform(source, dest string, op func(*imaging.Grid) (*imaging.Grid, error)) (*ImageResult, error) {
	if err := requireArgs(map[string]string{"source": source}); err != nil {
		return nil, err
	}
	src, err := s.store.Get(source)
	if err != nil {
		return nil, err
	}
	out, err := op(src)
	if err != nil {
		return nil, err
	}
	return s.storeResult(dest, out)
}

// withSplit wraps op so that, when percentage is set, its output is shown as a
// split view beside the source.
func withSplit(op func(*imaging.Grid) (*imaging.Grid, error), percentage *int, side string) (func(*imaging.Grid) (*imaging.Grid, error), error) {
	if percentage == nil {
		return op, nil
	}
	splitSide, err := imaging.ParseSplitSide(side)
	if err != nil {
		return nil, err
	}
	return func(g *imaging.Grid) (*imaging.Grid, error) {
		processed, err := op(g)
		if err != nil {
			return nil, err
		}
		return imaging.ApplySplitView(g, processed, *percentage, splitSide)
	}, nil
}

// === Workspace Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// LoadResult describes an image loaded from disk.
type LoadResult struct {
	ImageResult
	Path          string `json:"path"`
	Format        string `json:"format"`
	FileSizeBytes int64  `json:"file_size_bytes"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requireArgs(map[string]string{"path": a.Path}); err != nil {
		return nil, err
	}
	if a.Name == "" {
		a.Name = nameFromPath(a.Path)
	}

	g, info, err := s.store.Load(a.Path, a.Name)
	if err != nil {
		return nil, err
	}
	Logf("Loaded %s as %s (%dx%d)", a.Path, a.Name, g.Width(), g.Height())
	return &LoadResult{
		ImageResult:   *newImageResult(a.Name, g),
		Path:          info.Path,
		Format:        info.Format,
		FileSizeBytes: info.FileSizeBytes,
	}, nil
}

// nameFromPath derives a workspace name from a file name: "dir/My Photo.png" -> "My-Photo".
func nameFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.Join(strings.Fields(base), "-")
}

type imageSaveArgs struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Quality int    `json:"quality"`
}

func (s *Server) handleImageSave(args json.RawMessage) (interface{}, error) {
	var a imageSaveArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requireArgs(map[string]string{"name": a.Name, "path": a.Path}); err != nil {
		return nil, err
	}
	if a.Quality == 0 {
		a.Quality = codec.DefaultJPEGQuality
	}

	g, err := s.store.Get(a.Name)
	if err != nil {
		return nil, err
	}
	if err := codec.Save(a.Path, g, a.Quality); err != nil {
		return nil, err
	}
	Logf("Saved %s to %s", a.Name, a.Path)
	return map[string]interface{}{
		"image": newImageResult(a.Name, g),
		"path":  a.Path,
	}, nil
}

type imageNameArgs struct {
	Name string `json:"name"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imageNameArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	g, err := s.store.Get(a.Name)
	if err != nil {
		return nil, err
	}
	return newImageResult(a.Name, g), nil
}

func (s *Server) handleImageList(args json.RawMessage) (interface{}, error) {
	images := []*ImageResult{}
	for _, name := range s.store.Names() {
		// Entries deleted between Names and Get are skipped.
		if g, err := s.store.Get(name); err == nil {
			images = append(images, newImageResult(name, g))
		}
	}
	return map[string]interface{}{
		"count":  len(images),
		"images": images,
	}, nil
}

type imageSampleColorArgs struct {
	Name string `json:"name"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// ColorResult is the color of a single pixel.
type ColorResult struct {
	X   int         `json:"x"`
	Y   int         `json:"y"`
	RGB imaging.RGB `json:"rgb"`
	Hex string      `json:"hex"`
	HSL struct {
		H int `json:"h"`
		S int `json:"s"`
		L int `json:"l"`
	} `json:"hsl"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	g, err := s.store.Get(a.Name)
	if err != nil {
		return nil, err
	}
	if a.X < 0 || a.X >= g.Width() || a.Y < 0 || a.Y >= g.Height() {
		return nil, fmt.Errorf("coordinates (%d,%d) out of bounds (image is %dx%d): %w",
			a.X, a.Y, g.Width(), g.Height(), imaging.ErrInvalidArgument)
	}

	p := g.At(a.X, a.Y)
	res := &ColorResult{X: a.X, Y: a.Y, RGB: p, Hex: p.Hex()}
	res.HSL.H, res.HSL.S, res.HSL.L = p.HSL()
	return res, nil
}

// === Point Operation Handlers ===

type imageBrightnessArgs struct {
	Source string `json:"source"`
	Dest   string `json:"dest"`
	Amount int    `json:"amount"`
}

func (s *Server) handleImageBrightness(args json.RawMessage, op func(*imaging.Grid, int) (*imaging.Grid, error)) (interface{}, error) {
	var a imageBrightnessArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.transform(a.Source, a.Dest, func(g *imaging.Grid) (*imaging.Grid, error) {
		return op(g, a.Amount)
	})
}

type imageFlipArgs struct {
	Source    string `json:"source"`
	Dest      string `json:"dest"`
	Direction string `json:"direction"`
}

func (s *Server) handleImageFlip(args json.RawMessage) (interface{}, error) {
	var a imageFlipArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	switch a.Direction {
	case "horizontal":
		return s.transform(a.Source, a.Dest, imaging.FlipHorizontal)
	case "vertical":
		return s.transform(a.Source, a.Dest, imaging.FlipVertical)
	default:
		return nil, fmt.Errorf("direction %q must be horizontal or vertical: %w", a.Direction, imaging.ErrInvalidArgument)
	}
}

type imageComponentArgs struct {
	Source    string `json:"source"`
	Dest      string `json:"dest"`
	Component string `json:"component"`
}

func (s *Server) handleImageComponent(args json.RawMessage) (interface{}, error) {
	var a imageComponentArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	c, err := imaging.ParseComponent(a.Component)
	if err != nil {
		return nil, err
	}
	return s.transform(a.Source, a.Dest, func(g *imaging.Grid) (*imaging.Grid, error) {
		return imaging.VisualizeComponent(g, c)
	})
}

type imageRGBSplitArgs struct {
	Source string `json:"source"`
	Red    string `json:"red"`
	Green  string `json:"green"`
	Blue   string `json:"blue"`
}

func (s *Server) handleImageRGBSplit(args json.RawMessage) (interface{}, error) {
	var a imageRGBSplitArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requireArgs(map[string]string{"source": a.Source}); err != nil {
		return nil, err
	}
	if a.Red == "" {
		a.Red = a.Source + "-red"
	}
	if a.Green == "" {
		a.Green = a.Source + "-green"
	}
	if a.Blue == "" {
		a.Blue = a.Source + "-blue"
	}

	src, err := s.store.Get(a.Source)
	if err != nil {
		return nil, err
	}
	red, green, blue, err := imaging.SplitChannels(src)
	if err != nil {
		return nil, err
	}

	results := make(map[string]*ImageResult, 3)
	for _, ch := range []struct {
		key, name string
		grid      *imaging.Grid
	}{{"red", a.Red, red}, {"green", a.Green, green}, {"blue", a.Blue, blue}} {
		res, err := s.storeResult(ch.name, ch.grid)
		if err != nil {
			return nil, err
		}
		results[ch.key] = res
	}
	return results, nil
}

type imageRGBCombineArgs struct {
	Red   string `json:"red"`
	Green string `json:"green"`
	Blue  string `json:"blue"`
	Dest  string `json:"dest"`
}

func (s *Server) handleImageRGBCombine(args json.RawMessage) (interface{}, error) {
	var a imageRGBCombineArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	grids, err := s.store.GetAll(a.Red, a.Green, a.Blue)
	if err != nil {
		return nil, err
	}
	out, err := imaging.CombineChannels(grids[0], grids[1], grids[2])
	if err != nil {
		return nil, err
	}
	return s.storeResult(a.Dest, out)
}

// === Filter Handlers ===

var filters = map[string]func(*imaging.Grid) (*imaging.Grid, error){
	"blur":          imaging.Blur,
	"sharpen":       imaging.Sharpen,
	"sepia":         imaging.Sepia,
	"greyscale":     imaging.Greyscale,
	"color-correct": imaging.ColorCorrect,
}

type imageFilterArgs struct {
	Source          string `json:"source"`
	Dest            string `json:"dest"`
	Filter          string `json:"filter"`
	SplitPercentage *int   `json:"split_percentage"`
	SplitSide       string `json:"split_side"`
}

func (s *Server) handleImageFilter(args json.RawMessage) (interface{}, error) {
	var a imageFilterArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	filter, ok := filters[a.Filter]
	if !ok {
		return nil, fmt.Errorf("filter %q: %w", a.Filter, imaging.ErrUnsupportedOperation)
	}
	op, err := withSplit(filter, a.SplitPercentage, a.SplitSide)
	if err != nil {
		return nil, err
	}
	return s.transform(a.Source, a.Dest, op)
}

type imageHistogramArgs struct {
	Source      string `json:"source"`
	Dest        string `json:"dest"`
	IncludeBins bool   `json:"include_bins"`
}

// HistogramResult reports histogram statistics and the rendered chart.
type HistogramResult struct {
	Chart    *ImageResult       `json:"chart"`
	Peaks    [3]int             `json:"peaks"`
	MaxCount int                `json:"max_count"`
	Bins     *imaging.Histogram `json:"bins,omitempty"`
}

func (s *Server) handleImageHistogram(args json.RawMessage) (interface{}, error) {
	var a imageHistogramArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requireArgs(map[string]string{"source": a.Source}); err != nil {
		return nil, err
	}
	if a.Dest == "" {
		a.Dest = a.Source + "-histogram"
	}

	src, err := s.store.Get(a.Source)
	if err != nil {
		return nil, err
	}
	h, err := imaging.CalculateHistogram(src)
	if err != nil {
		return nil, err
	}
	peaks, err := h.Peaks(imaging.DefaultPeakRange)
	if err != nil {
		return nil, err
	}
	chart, err := imaging.RenderHistogram(src)
	if err != nil {
		return nil, err
	}
	res, err := s.storeResult(a.Dest, chart)
	if err != nil {
		return nil, err
	}

	out := &HistogramResult{Chart: res, Peaks: peaks, MaxCount: h.Max()}
	if a.IncludeBins {
		out.Bins = h
	}
	return out, nil
}

type imageLevelsAdjustArgs struct {
	Source          string `json:"source"`
	Dest            string `json:"dest"`
	Black           int    `json:"black"`
	Mid             int    `json:"mid"`
	White           int    `json:"white"`
	SplitPercentage *int   `json:"split_percentage"`
	SplitSide       string `json:"split_side"`
}

func (s *Server) handleImageLevelsAdjust(args json.RawMessage) (interface{}, error) {
	var a imageLevelsAdjustArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	op, err := withSplit(func(g *imaging.Grid) (*imaging.Grid, error) {
		return imaging.LevelsAdjust(g, a.Black, a.Mid, a.White)
	}, a.SplitPercentage, a.SplitSide)
	if err != nil {
		return nil, err
	}
	return s.transform(a.Source, a.Dest, op)
}

type imageCompressArgs struct {
	Source     string  `json:"source"`
	Dest       string  `json:"dest"`
	Percentage float64 `json:"percentage"`
}

func (s *Server) handleImageCompress(args json.RawMessage) (interface{}, error) {
	var a imageCompressArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.transform(a.Source, a.Dest, func(g *imaging.Grid) (*imaging.Grid, error) {
		return imaging.Compress(g, a.Percentage)
	})
}

type imageDownscaleArgs struct {
	Source string `json:"source"`
	Dest   string `json:"dest"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (s *Server) handleImageDownscale(args json.RawMessage) (interface{}, error) {
	var a imageDownscaleArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.transform(a.Source, a.Dest, func(g *imaging.Grid) (*imaging.Grid, error) {
		return imaging.Downscale(g, a.Width, a.Height)
	})
}

type imagePartialArgs struct {
	Source    string `json:"source"`
	Mask      string `json:"mask"`
	Dest      string `json:"dest"`
	Operation string `json:"operation"`
}

func (s *Server) handleImagePartial(args json.RawMessage) (interface{}, error) {
	var a imagePartialArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	op, err := imaging.ParseOperation(a.Operation)
	if err != nil {
		return nil, err
	}
	mask, err := s.store.Get(a.Mask)
	if err != nil {
		return nil, err
	}
	return s.transform(a.Source, a.Dest, func(g *imaging.Grid) (*imaging.Grid, error) {
		return imaging.ApplyWithMask(g, mask, op)
	})
}

// === Batch Handlers ===

type imageRunScriptArgs struct {
	Script string `json:"script"`
	Path   string `json:"path"`
}

func (s *Server) handleImageRunScript(args json.RawMessage) (interface{}, error) {
	var a imageRunScriptArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	runner := script.NewRunner(s.store, script.WithOutput(&out))

	var err error
	switch {
	case a.Script != "":
		err = runner.Run(context.Background(), strings.NewReader(a.Script))
	case a.Path != "":
		err = runner.RunFile(context.Background(), a.Path)
	default:
		return nil, fmt.Errorf("script or path: %w", ErrMissingArgument)
	}
	if err != nil {
		return nil, fmt.Errorf("%w\n%s", err, out.String())
	}

	output := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(output) == 1 && output[0] == "" {
		output = []string{}
	}
	return map[string]interface{}{
		"output": output,
		"images": s.store.Names(),
	}, nil
}
