package control

import "sync"

// UhidReceiver is implemented by whatever owns a registered UHID device
// (e.g. the gamepad/mouse UHID passthrough) and wants raw output reports
// routed back to it.
type UhidReceiver interface {
	HandleUhidOutput(data []byte)
}

// UhidRegistry routes DeviceMsgUhidOutput messages to the receiver
// registered under the matching id, grounded on
// original_source/uhid/{mouse,gamepad}_uhid.c's id-keyed receiver
// registration pattern (sc_uhid_devices_get_receiver). This is a feature
// spec.md names (C10/C11 mention UhidOutput/UhidCreate) but does not
// spell out the registry structure for, so it is one of SPEC_FULL.md's
// supplemented features.
type UhidRegistry struct {
	mu        sync.Mutex
	receivers map[uint16]UhidReceiver
}

func NewUhidRegistry() *UhidRegistry {
	return &UhidRegistry{receivers: make(map[uint16]UhidReceiver)}
}

func (r *UhidRegistry) Register(id uint16, recv UhidReceiver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.receivers[id] = recv
}

func (r *UhidRegistry) Unregister(id uint16) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.receivers, id)
}

// Dispatch routes data to the receiver registered for id. ok is false if
// no receiver is registered (the caller should log a warning, not fail).
func (r *UhidRegistry) Dispatch(id uint16, data []byte) (ok bool) {
	r.mu.Lock()
	recv, ok := r.receivers[id]
	r.mu.Unlock()
	if !ok {
		return false
	}
	recv.HandleUhidOutput(data)
	return true
}
