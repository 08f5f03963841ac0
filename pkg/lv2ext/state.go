package lv2ext

// StoreFunc mirrors LV2_State_Store_Function: the plugin calls this
// during Save to persist one property.
type StoreFunc func(key uint32, value []byte, valueType uint32, flags uint32) error

// RetrieveFunc mirrors LV2_State_Retrieve_Function: the plugin calls
// this during Restore to read back one previously stored property.
type RetrieveFunc func(key uint32) (value []byte, valueType uint32, flags uint32, ok bool)

// State flags, a small subset of the LV2_State_Flags bitmask the
// bridge actually distinguishes between (POD vs. everything else).
const (
	StateIsPOD uint32 = 1 << iota
	StateIsPortable
)

// StateInterface mirrors LV2_State_Interface: the save()/restore()
// entry points a plugin exposes when it declares state:interface.
type StateInterface struct {
	Save    func(store StoreFunc, flags uint32) error
	Restore func(retrieve RetrieveFunc, flags uint32) error
}
