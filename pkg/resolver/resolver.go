package resolver

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/go-lv2/lv2vst/pkg/lv2model"
	"github.com/go-lv2/lv2vst/pkg/rdfworld"
)

// LibraryOpener probes a shared library for a symbol without keeping it
// open — C5 performs the real, persistent dlopen once a descriptor has
// been resolved. Implemented by pkg/dynload.
type LibraryOpener interface {
	HasSymbol(path, symbol string) (bool, error)
}

// EnumEntry is one plugin surfaced by Enumerate, used by the VST shell
// mechanism to list sub-plugins.
type EnumEntry struct {
	ID   uint32
	URI  string
	Name string
}

// ErrUnsupported is returned whenever a plugin fails the resolver's
// feature/option/structural verification (spec §4.3 step 11 and
// step 3/4's "fail unless it is one of").
type ErrUnsupported struct {
	URI    string
	Reason string
}

func (e *ErrUnsupported) Error() string {
	return fmt.Sprintf("resolver: plugin %q unsupported: %s", e.URI, e.Reason)
}

// Resolver turns bundle paths plus a selector into a verified
// PluginDescriptor, per spec §4.3.
type Resolver struct {
	world  rdfworld.World
	opener LibraryOpener
}

// New returns a Resolver that queries world and probes shared libraries
// through opener. world is typically an empty rdfworld.NewTurtleWorld()
// — the resolver itself drives LoadBundle/LoadSystemWide.
func New(world rdfworld.World, opener LibraryOpener) *Resolver {
	return &Resolver{world: world, opener: opener}
}

func (r *Resolver) loadPaths(bundlePaths []string) error {
	if len(bundlePaths) == 0 {
		return r.world.LoadSystemWide()
	}
	for _, p := range bundlePaths {
		if err := r.world.LoadBundle(p); err != nil {
			return err
		}
	}
	return nil
}

// ResolveByURI implements resolve_by_uri.
func (r *Resolver) ResolveByURI(uri string, bundlePaths []string) (*lv2model.PluginDescriptor, error) {
	if err := r.loadPaths(bundlePaths); err != nil {
		return nil, err
	}
	return r.buildDescriptor(uri)
}

// ResolveByID implements resolve_by_id: scan every known plugin subject
// and return the first whose URIToID matches.
func (r *Resolver) ResolveByID(id uint32, bundlePaths []string) (*lv2model.PluginDescriptor, error) {
	if err := r.loadPaths(bundlePaths); err != nil {
		return nil, err
	}
	for _, uri := range r.world.Subjects(rdfworld.RDFType, rdfworld.LV2Plugin) {
		if URIToID(uri) == id {
			return r.buildDescriptor(uri)
		}
	}
	return nil, &ErrUnsupported{Reason: fmt.Sprintf("no plugin with id 0x%08x", id)}
}

// Enumerate implements enumerate: list every plugin under bundlePaths
// (or the system-wide world) whose URI survives the whitelist/blacklist
// prefix filters, skipping anything that fails resolution.
func (r *Resolver) Enumerate(bundlePaths []string, whitelist, blacklist []string) ([]EnumEntry, error) {
	if err := r.loadPaths(bundlePaths); err != nil {
		return nil, err
	}
	var out []EnumEntry
	for _, uri := range r.world.Subjects(rdfworld.RDFType, rdfworld.LV2Plugin) {
		if !passesFilters(uri, whitelist, blacklist) {
			continue
		}
		desc, err := r.buildDescriptor(uri)
		if err != nil {
			continue // skip plugins that fail resolve_by_id/descriptor verification
		}
		out = append(out, EnumEntry{ID: desc.ID, URI: desc.DSPURI, Name: desc.Name})
	}
	return out, nil
}

func passesFilters(uri string, whitelist, blacklist []string) bool {
	for _, b := range blacklist {
		if strings.HasPrefix(uri, b) {
			return false
		}
	}
	if len(whitelist) == 0 {
		return true
	}
	for _, w := range whitelist {
		if strings.HasPrefix(uri, w) {
			return true
		}
	}
	return false
}

// buildDescriptor runs the full step 1-11 algorithm for one plugin
// subject already present in r.world.
func (r *Resolver) buildDescriptor(uri string) (*lv2model.PluginDescriptor, error) {
	bundle := r.world.BundleDir(uri)

	d := &lv2model.PluginDescriptor{
		DSPURI:          uri,
		ID:              URIToID(uri),
		BundlePath:      bundle,
		LatencyCtrlPort: -1,
		EnableCtrlPort:  -1,
	}

	// Step 1: name, vendor, dsp_path.
	if t, ok := r.world.Object(uri, rdfworld.RDFSLabel); ok {
		d.Name = t.Value
	} else if t, ok := r.world.Object(uri, rdfworld.LV2Name); ok {
		d.Name = t.Value
	}
	if proj, ok := r.world.Object(uri, rdfworld.LV2Project); ok {
		if v, ok := r.world.Object(proj.Value, rdfworld.RDFSLabel); ok {
			d.Vendor = v.Value
		}
	}
	if bin, ok := r.world.Object(uri, rdfworld.LV2Binary); ok {
		d.DSPPath = resolvePath(bundle, bin.Value)
	}

	// Step 2: versions.
	if v, ok := r.world.Object(uri, rdfworld.LV2MinorVersion); ok {
		d.VersionMinor = int32(parseIntLiteral(v.Value))
	}
	if v, ok := r.world.Object(uri, rdfworld.LV2MicroVersion); ok {
		d.VersionMicro = int32(parseIntLiteral(v.Value))
	}

	// Step 3: required features.
	for _, feat := range r.world.Objects(uri, rdfworld.LV2RequiredFeature) {
		if !rdfworld.SupportedFeatures[feat.Value] {
			return nil, &ErrUnsupported{URI: uri, Reason: "required feature " + feat.Value}
		}
	}

	// Step 4: required options.
	for _, opt := range r.world.Objects(uri, rdfworld.OptionsRequiredOption) {
		if !rdfworld.SupportedOptions[opt.Value] {
			return nil, &ErrUnsupported{URI: uri, Reason: "required option " + opt.Value}
		}
	}

	// Step 5: category.
	d.Category = classifyCategory(r.world.Objects(uri, rdfworld.RDFType))

	// Step 6: UI.
	r.resolveUI(d, uri)

	// Step 7: verify shared libraries open and export entry points.
	if d.DSPPath == "" {
		return nil, &ErrUnsupported{URI: uri, Reason: "no lv2:binary"}
	}
	if r.opener != nil {
		ok, err := r.opener.HasSymbol(d.DSPPath, "lv2_descriptor")
		if err != nil || !ok {
			return nil, &ErrUnsupported{URI: uri, Reason: "dsp binary missing lv2_descriptor"}
		}
		if d.GUIPath != "" {
			if ok, _ := r.opener.HasSymbol(d.GUIPath, "lv2ui_descriptor"); !ok {
				d.GUIURI, d.GUIPath = "", "" // GUI absence alone is not fatal
			}
		}
	}

	// Steps 8-10: ports.
	d.MinAtomBufSiz = lv2model.MinAtomBufSizFloor
	for i, portSubj := range r.world.Objects(uri, rdfworld.LV2Port) {
		p, minBuf := r.buildPort(portSubj.Value)
		if minBuf > d.MinAtomBufSiz {
			d.MinAtomBufSiz = minBuf
		}
		d.Ports = append(d.Ports, p)
		tallyPort(&d.Counts, p.Kind)

		if p.Kind == controlOutLatency(r.world, portSubj.Value) {
			d.LatencyCtrlPort = i
		}
		if isEnablePort(r.world, portSubj.Value) {
			d.EnableCtrlPort = i
		}
		if p.Kind == lv2model.AtomIn || p.Kind == lv2model.MidiIn {
			if hasTimePosition(r.world, portSubj.Value) {
				d.SendTimeInfo = true
			}
		}
	}

	if _, ok := r.world.Object(uri, rdfworld.StateInterface); ok {
		d.HasStateInterface = true
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// resolveUI enumerates the plugin's declared UIs (ui:ui objects of the
// plugin subject) and picks the first whose rdf:type matches the
// platform's native UI class, overriding bundle_path to the UI's own
// bundle per spec step 6.
func (r *Resolver) resolveUI(d *lv2model.PluginDescriptor, pluginURI string) {
	native := rdfworld.NativeUIClass(runtime.GOOS)
	for _, ui := range r.world.Objects(pluginURI, rdfworld.UIUI) {
		types := r.world.Objects(ui.Value, rdfworld.RDFType)
		if !hasType(types, native) {
			continue
		}
		bin, ok := r.world.Object(ui.Value, rdfworld.UIBinary)
		if !ok {
			continue
		}
		d.GUIURI = ui.Value
		d.BundlePath = r.world.BundleDir(ui.Value)
		d.GUIPath = resolvePath(d.BundlePath, bin.Value)
		return
	}
}

func (r *Resolver) buildPort(portSubj string) (lv2model.Port, uint32) {
	p := lv2model.Port{Steps: 100}
	types := r.world.Objects(portSubj, rdfworld.RDFType)
	input := hasType(types, rdfworld.LV2InputPort)
	isControl := hasType(types, rdfworld.LV2ControlPort)
	isAudio := hasType(types, rdfworld.LV2AudioPort) || hasType(types, rdfworld.LV2CVPort)
	isAtom := hasType(types, rdfworld.AtomPort)

	var minBuf uint32
	switch {
	case isControl:
		p.Kind = kindFor(input, lv2model.ControlIn, lv2model.ControlOut)
	case isAudio:
		p.Kind = kindFor(input, lv2model.AudioIn, lv2model.AudioOut)
	case isAtom:
		supportsMIDI := false
		for _, s := range r.world.Objects(portSubj, rdfworld.AtomSupports) {
			if s.Value == rdfworld.MidiEvent {
				supportsMIDI = true
			}
		}
		if supportsMIDI {
			p.Kind = kindFor(input, lv2model.MidiIn, lv2model.MidiOut)
		} else {
			p.Kind = kindFor(input, lv2model.AtomIn, lv2model.AtomOut)
		}
		if sz, ok := r.world.Object(portSubj, rdfworld.ResizePortMinimumSize); ok {
			minBuf = uint32(parseIntLiteral(sz.Value))
		}
	}

	if sym, ok := r.world.Object(portSubj, rdfworld.LV2Symbol); ok {
		p.Symbol = sym.Value
	}
	if name, ok := r.world.Object(portSubj, rdfworld.LV2Name); ok {
		p.Name = name.Value
	}
	if com, ok := r.world.Object(portSubj, rdfworld.RDFSComment); ok {
		p.Doc = com.Value
	}
	if def, ok := r.world.Object(portSubj, rdfworld.LV2Default); ok {
		p.Default = parseFloatLiteral(def.Value)
	}
	if min, ok := r.world.Object(portSubj, rdfworld.LV2Minimum); ok {
		p.Min = parseFloatLiteral(min.Value)
	}
	if max, ok := r.world.Object(portSubj, rdfworld.LV2Maximum); ok {
		p.Max = parseFloatLiteral(max.Value)
	}
	if steps, ok := r.world.Object(portSubj, rdfworld.PortPropsRangeSteps); ok {
		p.Steps = int32(parseIntLiteral(steps.Value))
	}

	props := r.world.Objects(portSubj, rdfworld.LV2Core+"portProperty")
	if hasType(props, rdfworld.LV2Toggled) {
		p.Flags.Toggled = true
	}
	if hasType(props, rdfworld.LV2Integer) {
		p.Flags.IntegerStep = true
	}
	if hasType(props, rdfworld.LV2Enumeration) {
		p.Flags.Enumeration = true
	}
	if hasType(props, rdfworld.LV2SampleRate) {
		p.Flags.SRDependent = true
	}
	if hasType(props, rdfworld.PortPropsLogarithmic) {
		p.Flags.Logarithmic = true
	}
	if hasType(props, rdfworld.PortPropsNotOnGUI) {
		p.Flags.NotOnGUI = true
	}
	if hasType(props, rdfworld.PortPropsNotAutomatic) {
		p.Flags.NotAutomatic = true
	}

	p.MinAtomBufSiz = minBuf
	return p, minBuf
}

func kindFor(input bool, in, out lv2model.Kind) lv2model.Kind {
	if input {
		return in
	}
	return out
}

func hasType(types []rdfworld.Term, uri string) bool {
	for _, t := range types {
		if t.Value == uri {
			return true
		}
	}
	return false
}

func tallyPort(c *lv2model.PortCounts, k lv2model.Kind) {
	switch k {
	case lv2model.ControlIn:
		c.ControlIn++
	case lv2model.ControlOut:
		c.ControlOut++
	case lv2model.AudioIn:
		c.AudioIn++
	case lv2model.AudioOut:
		c.AudioOut++
	case lv2model.MidiIn:
		c.MidiIn++
	case lv2model.MidiOut:
		c.MidiOut++
	case lv2model.AtomIn:
		c.AtomIn++
	case lv2model.AtomOut:
		c.AtomOut++
	}
}

func classifyCategory(types []rdfworld.Term) lv2model.Category {
	for _, t := range types {
		switch {
		case strings.Contains(t.Value, "InstrumentPlugin"):
			return lv2model.CategoryInstrument
		case strings.Contains(t.Value, "SpatialPlugin"):
			return lv2model.CategorySpatial
		case strings.Contains(t.Value, "GeneratorPlugin"):
			return lv2model.CategoryGenerator
		case strings.Contains(t.Value, "UtilityPlugin"):
			return lv2model.CategoryUtility
		}
	}
	for _, t := range types {
		if t.Value != rdfworld.LV2Plugin && strings.HasSuffix(t.Value, "Plugin") {
			return lv2model.CategoryEffect
		}
	}
	return lv2model.CategoryUnknown
}

func hasTimePosition(w rdfworld.World, portSubj string) bool {
	for _, s := range w.Objects(portSubj, rdfworld.AtomSupports) {
		if s.Value == rdfworld.TimePosition {
			return true
		}
	}
	return false
}

func isEnablePort(w rdfworld.World, portSubj string) bool {
	_, ok := w.Object(portSubj, rdfworld.LV2Enabled)
	return ok
}

// controlOutLatency returns lv2model.ControlOut when portSubj reports
// latency, otherwise a sentinel that never matches a real port kind.
func controlOutLatency(w rdfworld.World, portSubj string) lv2model.Kind {
	if _, ok := w.Object(portSubj, rdfworld.LV2ReportsLatency); ok {
		return lv2model.ControlOut
	}
	return lv2model.Kind(-1)
}

func resolvePath(bundle, value string) string {
	if strings.HasPrefix(value, "file://") {
		return strings.TrimPrefix(value, "file://")
	}
	if bundle == "" {
		return value
	}
	return bundle + "/" + value
}

func parseIntLiteral(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

func parseFloatLiteral(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
