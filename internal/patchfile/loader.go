package patchfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/foldgraph/internal/ctxlog"
	"github.com/specialistvlad/foldgraph/internal/fsutil"
	"github.com/specialistvlad/foldgraph/internal/graph"
	"github.com/specialistvlad/foldgraph/internal/nodeid"
	"github.com/specialistvlad/foldgraph/internal/registry"
)

const (
	// InputName addresses a graph's GraphInput node in patch endpoints.
	InputName = "input"
	// OutputName addresses a graph's GraphOutput node in patch endpoints.
	OutputName = "output"

	subgraphKind = "subgraph"
)

// ErrInvalidPatch is wrapped by every semantic error in a patch file.
var ErrInvalidPatch = errors.New("patchfile: invalid patch")

// Patch is a loaded graph together with the names its nodes were given.
type Patch struct {
	Graph *graph.Graph
	// Names maps each top-level node name to its id.
	Names map[string]nodeid.ID
}

// NameOf returns the name a node was declared with, or its id's text form.
func (p *Patch) NameOf(id nodeid.ID) string {
	for name, nid := range p.Names {
		if nid == id {
			return name
		}
	}
	return id.String()
}

// Loader builds graphs from patch files using the node kinds in a registry.
type Loader struct {
	reg *registry.Registry
}

// NewLoader creates a new patch file loader.
func NewLoader(reg *registry.Registry) *Loader {
	return &Loader{reg: reg}
}

// LoadPath loads path, which is either a single patch file or a directory
// whose .hcl files together describe one graph.
func (l *Loader) LoadPath(ctx context.Context, path string) (*Patch, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read patch path %s: %w", path, err)
	}
	if info.IsDir() {
		return l.LoadDir(ctx, path)
	}
	return l.LoadFile(ctx, path)
}

// LoadFile reads and loads the patch file at path.
func (l *Loader) LoadFile(ctx context.Context, path string) (*Patch, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read patch file %s: %w", path, err)
	}
	return l.Load(ctx, path, src)
}

// LoadDir merges every .hcl file under dir, recursively, into one patch.
// Node names share a single namespace across the files.
func (l *Loader) LoadDir(ctx context.Context, dir string) (*Patch, error) {
	logger := ctxlog.FromContext(ctx)

	paths, err := fsutil.FindFilesByExtension(dir, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to list patch files in %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no .hcl files in %s", ErrInvalidPatch, dir)
	}
	logger.Debug("Patch directory scanned.", "dir", dir, "files", len(paths))

	parser := hclparse.NewParser()
	files := make([]*hcl.File, 0, len(paths))
	for _, path := range paths {
		file, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse patch file %s: %w", path, diags)
		}
		files = append(files, file)
	}
	return l.loadBody(ctx, dir, hcl.MergeFiles(files))
}

// Load parses src, named filename in diagnostics, and builds its graph.
func (l *Loader) Load(ctx context.Context, filename string, src []byte) (*Patch, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse patch file %s: %w", filename, diags)
	}
	return l.loadBody(ctx, filename, file.Body)
}

func (l *Loader) loadBody(ctx context.Context, filename string, body hcl.Body) (*Patch, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Patch loader started.", "file", filename)

	var root graphBody
	if diags := gohcl.DecodeBody(body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode patch file %s: %w", filename, diags)
	}

	g, names, err := l.build(ctx, "", &root)
	if err != nil {
		return nil, fmt.Errorf("patch file %s: %w", filename, err)
	}

	logger.Debug("Patch loading complete.", "file", filename, "nodes", g.Len(), "edges", len(g.Edges()))
	return &Patch{Graph: g, Names: names}, nil
}

// build constructs the graph described by body. path is the slash-joined
// chain of enclosing subgraph names.
func (l *Loader) build(ctx context.Context, path string, body *graphBody) (*graph.Graph, map[string]nodeid.ID, error) {
	logger := ctxlog.FromContext(ctx)

	var opts []graph.Option
	if body.Inputs != nil {
		opts = append(opts, graph.WithInputs(body.Inputs...))
	}
	if body.Outputs != nil {
		opts = append(opts, graph.WithOutputs(body.Outputs...))
	}
	g := graph.New(opts...)
	names := make(map[string]nodeid.ID)

	var result *multierror.Error
	declare := func(name string, node graph.Node) {
		if err := checkName(name, names); err != nil {
			result = multierror.Append(result, err)
			return
		}
		id := nodeid.NewFromName(qualify(path, name))
		if _, err := g.InsertWithID(node, id); err != nil {
			result = multierror.Append(result, fmt.Errorf("node %q: %w", name, err))
			return
		}
		names[name] = id
		logger.Debug("Declared node.", "path", qualify(path, name), "id", id.Short(), "title", node.Title())
	}

	for _, nb := range body.Nodes {
		node, err := l.buildNode(ctx, nb)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("node %q: %w", nb.Name, err))
			continue
		}
		declare(nb.Name, node)
	}

	for _, sb := range body.Subgraphs {
		var child graphBody
		if diags := gohcl.DecodeBody(sb.Remain, nil, &child); diags.HasErrors() {
			result = multierror.Append(result, fmt.Errorf("subgraph %q: %w", sb.Name, diags))
			continue
		}
		cg, _, err := l.build(ctx, qualify(path, sb.Name), &child)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("subgraph %q: %w", sb.Name, err))
			continue
		}
		declare(sb.Name, graph.NewSubgraph(sb.Name, cg))
	}

	// Patches are only meaningful once every node exists.
	if err := result.ErrorOrNil(); err != nil {
		return nil, nil, err
	}

	for i, pb := range body.Patches {
		if err := l.connect(g, names, pb); err != nil {
			result = multierror.Append(result, fmt.Errorf("patch #%d (%s -> %s): %w", i+1, pb.From, pb.To, err))
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, nil, err
	}
	return g, names, nil
}

func (l *Loader) buildNode(ctx context.Context, nb *nodeBlock) (graph.Node, error) {
	if nb.Kind == subgraphKind {
		return nil, fmt.Errorf("%w: kind %q is declared with a subgraph block", ErrInvalidPatch, subgraphKind)
	}

	hclAttrs, diags := nb.Remain.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	attrs := make(registry.Attributes, len(hclAttrs))
	for name, attr := range hclAttrs {
		v, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		attrs[name] = v
	}
	return l.reg.Build(ctx, nb.Kind, attrs)
}

func (l *Loader) connect(g *graph.Graph, names map[string]nodeid.ID, pb *patchBlock) error {
	fromNode, fromPort, err := splitEndpoint(pb.From)
	if err != nil {
		return err
	}
	toNode, toPort, err := splitEndpoint(pb.To)
	if err != nil {
		return err
	}

	var src graph.NodeHandle
	switch fromNode {
	case InputName:
		src = g.InputHandle()
	case OutputName:
		return fmt.Errorf("%w: %q cannot be a patch source", ErrInvalidPatch, OutputName)
	default:
		h, err := handleFor(g, names, fromNode)
		if err != nil {
			return err
		}
		src = h
	}

	var dst graph.NodeHandle
	switch toNode {
	case OutputName:
		dst = g.OutputHandle()
	case InputName:
		return fmt.Errorf("%w: %q cannot be a patch target", ErrInvalidPatch, InputName)
	default:
		h, err := handleFor(g, names, toNode)
		if err != nil {
			return err
		}
		dst = h
	}

	out, ok := src.OutputNamed(fromPort)
	if !ok {
		return fmt.Errorf("%w: %s has no output %q (outputs: %s)", ErrInvalidPatch, fromNode, fromPort, outputNames(src))
	}
	in, ok := dst.InputNamed(toPort)
	if !ok {
		return fmt.Errorf("%w: %s has no input %q (inputs: %s)", ErrInvalidPatch, toNode, toPort, inputNames(dst))
	}
	return g.Connect(out, in)
}

func handleFor(g *graph.Graph, names map[string]nodeid.ID, name string) (graph.NodeHandle, error) {
	id, ok := names[name]
	if !ok {
		return graph.NodeHandle{}, fmt.Errorf("%w: unknown node %q", ErrInvalidPatch, name)
	}
	h, ok := g.Handle(id)
	if !ok {
		return graph.NodeHandle{}, fmt.Errorf("%w: node %q vanished", graph.ErrUnknownNode, name)
	}
	return h, nil
}

func splitEndpoint(s string) (string, string, error) {
	node, port, ok := strings.Cut(s, ".")
	if !ok || node == "" || port == "" {
		return "", "", fmt.Errorf("%w: endpoint %q must look like \"node.port\"", ErrInvalidPatch, s)
	}
	return node, port, nil
}

func checkName(name string, seen map[string]nodeid.ID) error {
	switch {
	case name == InputName || name == OutputName:
		return fmt.Errorf("%w: node name %q is reserved", ErrInvalidPatch, name)
	case strings.ContainsAny(name, "./"):
		return fmt.Errorf("%w: node name %q must not contain '.' or '/'", ErrInvalidPatch, name)
	}
	if _, dup := seen[name]; dup {
		return fmt.Errorf("%w: node %q declared twice", ErrInvalidPatch, name)
	}
	return nil
}

func qualify(path, name string) string {
	if path == "" {
		return name
	}
	return path + "/" + name
}

func outputNames(h graph.NodeHandle) string {
	var names []string
	for _, out := range h.Node().Outputs() {
		names = append(names, out.String())
	}
	return joinNames(names)
}

func inputNames(h graph.NodeHandle) string {
	var names []string
	for _, in := range h.Node().Inputs() {
		names = append(names, in.String())
	}
	return joinNames(names)
}

func joinNames(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}
