package models

// Status is the display state of a tenant or device.
type Status string

const (
	StatusOn        Status = "On"
	StatusOff       Status = "Off"
	StatusSuspended Status = "Suspended"
	// StatusUnknown is assigned until device state is read from the platform.
	StatusUnknown Status = "Unknown"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusOn, StatusOff, StatusSuspended, StatusUnknown:
		return true
	}
	return false
}
