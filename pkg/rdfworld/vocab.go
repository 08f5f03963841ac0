package rdfworld

// LV2/RDF vocabulary used by the resolver. Mirrors the predicate/class
// URIs the original x42/lv2vst source resolves through lilv
// (see original_source/src/lv2ttl.cc's LV2Parser constructor).
const (
	RDFType    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	RDFSLabel  = "http://www.w3.org/2000/01/rdf-schema#label"
	RDFSComment = "http://www.w3.org/2000/01/rdf-schema#comment"
	RDFSSeeAlso = "http://www.w3.org/2000/01/rdf-schema#seeAlso"

	LV2Core      = "http://lv2plug.in/ns/lv2core#"
	LV2Plugin    = LV2Core + "Plugin"
	LV2Port      = LV2Core + "port"
	LV2InputPort = LV2Core + "InputPort"
	LV2OutputPort = LV2Core + "OutputPort"
	LV2ControlPort = LV2Core + "ControlPort"
	LV2AudioPort = LV2Core + "AudioPort"
	LV2CVPort    = LV2Core + "CVPort"
	LV2Symbol    = LV2Core + "symbol"
	LV2Name      = LV2Core + "name"
	LV2Binary    = LV2Core + "binary"
	LV2Default   = LV2Core + "default"
	LV2Minimum   = LV2Core + "minimum"
	LV2Maximum   = LV2Core + "maximum"
	LV2Toggled   = LV2Core + "toggled"
	LV2Integer   = LV2Core + "integer"
	LV2Enumeration = LV2Core + "enumeration"
	LV2SampleRate  = LV2Core + "sampleRate"
	LV2MinorVersion = LV2Core + "minorVersion"
	LV2MicroVersion = LV2Core + "microVersion"
	LV2ReportsLatency = LV2Core + "reportsLatency"
	LV2Enabled        = LV2Core + "enabled"
	LV2RequiredFeature = LV2Core + "requiredFeature"
	LV2OptionalFeature = LV2Core + "optionalFeature"
	LV2Project         = LV2Core + "project"

	AtomPort        = "http://lv2plug.in/ns/ext/atom#AtomPort"
	AtomSupports    = "http://lv2plug.in/ns/ext/atom#supports"
	AtomSequence    = "http://lv2plug.in/ns/ext/atom#Sequence"
	AtomFloat       = "http://lv2plug.in/ns/ext/atom#Float"
	AtomInt         = "http://lv2plug.in/ns/ext/atom#Int"
	AtomLong        = "http://lv2plug.in/ns/ext/atom#Long"
	AtomDouble      = "http://lv2plug.in/ns/ext/atom#Double"
	AtomBool        = "http://lv2plug.in/ns/ext/atom#Bool"
	AtomObject      = "http://lv2plug.in/ns/ext/atom#Object"
	AtomBlank       = "http://lv2plug.in/ns/ext/atom#Blank"

	MidiEvent = "http://lv2plug.in/ns/ext/midi#MidiEvent"

	TimePosition        = "http://lv2plug.in/ns/ext/time#Position"
	TimeFrame           = "http://lv2plug.in/ns/ext/time#frame"
	TimeSpeed           = "http://lv2plug.in/ns/ext/time#speed"
	TimeBarBeat         = "http://lv2plug.in/ns/ext/time#barBeat"
	TimeBar             = "http://lv2plug.in/ns/ext/time#bar"
	TimeBeatUnit        = "http://lv2plug.in/ns/ext/time#beatUnit"
	TimeBeatsPerBar     = "http://lv2plug.in/ns/ext/time#beatsPerBar"
	TimeBeatsPerMinute  = "http://lv2plug.in/ns/ext/time#beatsPerMinute"

	ResizePortMinimumSize = "http://lv2plug.in/ns/ext/resize-port#minimumSize"

	PortPropsLogarithmic    = "http://lv2plug.in/ns/ext/port-props#logarithmic"
	PortPropsRangeSteps     = "http://lv2plug.in/ns/ext/port-props#rangeSteps"
	PortPropsNotOnGUI       = "http://lv2plug.in/ns/ext/port-props#notOnGUI"
	PortPropsNotAutomatic   = "http://lv2plug.in/ns/ext/port-props#notAutomatic"
	PortPropsTriggerOnGUI   = "http://lv2plug.in/ns/ext/port-props#trigger"

	OptionsInterface     = "http://lv2plug.in/ns/ext/options#options"
	OptionsRequiredOption = "http://lv2plug.in/ns/ext/options#requiredOption"

	WorkerSchedule = "http://lv2plug.in/ns/ext/worker#schedule"

	URIDMap   = "http://lv2plug.in/ns/ext/urid#map"
	URIDUnmap = "http://lv2plug.in/ns/ext/urid#unmap"

	BufSizeBoundedBlockLength = "http://lv2plug.in/ns/ext/buf-size#boundedBlockLength"
	BufSizeMinBlockLength     = "http://lv2plug.in/ns/ext/buf-size#minBlockLength"
	BufSizeMaxBlockLength     = "http://lv2plug.in/ns/ext/buf-size#maxBlockLength"
	BufSizeSequenceSize       = "http://lv2plug.in/ns/ext/buf-size#sequenceSize"

	ParamSampleRate = "http://lv2plug.in/ns/ext/parameters#sampleRate"

	StateInterface = "http://lv2plug.in/ns/ext/state#interface"

	UIUI      = "http://lv2plug.in/ns/extensions/ui#ui"
	UIBinary  = "http://lv2plug.in/ns/extensions/ui#binary"
	UIX11UI   = "http://lv2plug.in/ns/extensions/ui#X11UI"
	UICocoaUI = "http://lv2plug.in/ns/extensions/ui#CocoaUI"
	UIWindowsUI = "http://lv2plug.in/ns/extensions/ui#WindowsUI"
)

// RequiredFeatures the bridge host supports (spec §4.3 step 3).
var SupportedFeatures = map[string]bool{
	URIDMap:                   true,
	URIDUnmap:                 true,
	WorkerSchedule:            true,
	OptionsInterface:          true,
	BufSizeBoundedBlockLength: true,
}

// SupportedOptions the bridge host supports (spec §4.3 step 4).
var SupportedOptions = map[string]bool{
	ParamSampleRate:       true,
	BufSizeMinBlockLength: true,
	BufSizeMaxBlockLength: true,
	BufSizeSequenceSize:   true,
}

// NativeUIClass returns the LV2 UI class URI matching the platform this
// binary was built for (spec §4.3 step 6).
func NativeUIClass(goos string) string {
	switch goos {
	case "darwin":
		return UICocoaUI
	case "windows":
		return UIWindowsUI
	default:
		return UIX11UI
	}
}
