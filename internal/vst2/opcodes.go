package vst2

// Eff* opcodes: the subset of the VST 2.4 dispatcher's opcode space the
// bridge core handles, named after the canonical AEffectOpcodes enum.
const (
	EffOpen                  int32 = 0
	EffClose                 int32 = 1
	EffSetProgram            int32 = 2
	EffGetProgram            int32 = 3
	EffSetProgramName        int32 = 4
	EffGetProgramName        int32 = 5
	EffGetParamLabel         int32 = 6
	EffGetParamDisplay       int32 = 7
	EffGetParamName          int32 = 8
	EffSetSampleRate         int32 = 10
	EffSetBlockSize          int32 = 11
	EffMainsChanged          int32 = 12
	EffEditGetRect           int32 = 13
	EffEditOpen              int32 = 14
	EffEditClose             int32 = 15
	EffEditIdle              int32 = 19
	EffGetChunk              int32 = 23
	EffSetChunk              int32 = 24
	EffProcessEvents         int32 = 25
	EffCanBeAutomated        int32 = 26
	EffGetInputProperties    int32 = 33
	EffGetOutputProperties   int32 = 34
	EffGetPlugCategory       int32 = 35
	EffSetBypass             int32 = 44
	EffGetEffectName         int32 = 45
	EffGetVendorString       int32 = 47
	EffGetProductString      int32 = 48
	EffGetVendorVersion      int32 = 49
	EffCanDo                 int32 = 51
	EffGetTailSize           int32 = 52
	EffGetParameterProperties int32 = 56
	EffGetVstVersion         int32 = 58
	EffShellGetNextPlugin    int32 = 70
)

// AudioMaster* opcodes: the subset the bridge core invokes on the
// host's callback.
const (
	AudioMasterAutomate         int32 = 0
	AudioMasterVersion          int32 = 1
	AudioMasterCurrentID        int32 = 2
	AudioMasterIdle             int32 = 3
	AudioMasterGetTime          int32 = 7
	AudioMasterProcessEvents    int32 = 8
	AudioMasterIOChanged        int32 = 13
	AudioMasterSizeWindow       int32 = 15
	AudioMasterGetSampleRate    int32 = 16
	AudioMasterGetBlockSize     int32 = 17
	AudioMasterGetVendorString  int32 = 32
	AudioMasterGetProductString int32 = 33
	AudioMasterGetVendorVersion int32 = 34
	AudioMasterCanDo            int32 = 37
)

// VstTimeInfo flags the bridge cares about.
const (
	VstTransportPlaying  int32 = 1 << 1
	VstTransportChanged  int32 = 1
	VstTempoValid        int32 = 1 << 10
	VstTimeSigValid      int32 = 1 << 13
	VstPpqPosValid       int32 = 1 << 9
	VstNanosValid        int32 = 1 << 8
)

// Plugin categories for effGetPlugCategory, matching lv2model.Category.
const (
	KPlugCategUnknown    int32 = 0
	KPlugCategEffect     int32 = 1
	KPlugCategSynth      int32 = 2
	KPlugCategAnalysis   int32 = 3
	KPlugCategMastering  int32 = 4
	KPlugCategSpacializer int32 = 5
	KPlugCategRoomFx     int32 = 6
	KPlugSurroundFx      int32 = 7
	KPlugCategRestoration int32 = 8
	KPlugCategOfflineProcess int32 = 9
	KPlugCategShell      int32 = 10
	KPlugCategGenerator  int32 = 11
)

// EffectFlags mirrors the flags field bits the bridge sets.
const (
	EffFlagsCanReplacing     int32 = 1 << 4
	EffFlagsProgramChunks    int32 = 1 << 5
	EffFlagsIsSynth          int32 = 1 << 8
)
