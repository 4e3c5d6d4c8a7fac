package models

import "time"

// MedicalDevice is the deduplicated view of a medical device and its latest
// measurement.
type MedicalDevice struct {
	ID                  string    `json:"id"`
	Type                string    `json:"type"`
	Status              Status    `json:"status"`
	LastMeasurement     string    `json:"last_measurement"`
	LastMeasurementDate time.Time `json:"last_measurement_date"`
	OwnerName           string    `json:"owner_name"`
}

func NewMedicalDevice(rec MedicalDeviceRecord) MedicalDevice {
	return MedicalDevice{
		ID:                  rec.MedicalDeviceID,
		Type:                rec.DeviceTypeName,
		Status:              StatusUnknown,
		LastMeasurement:     rec.LastMeasurement,
		LastMeasurementDate: rec.MeasurementDate,
		OwnerName:           rec.FirstName + " " + rec.LastName,
	}
}

// DedupeMedicalDevices keeps one device per ID, choosing the most recent
// measurement. Ties keep the first occurrence. Output follows the order in
// which IDs were first seen.
func DedupeMedicalDevices(devices []MedicalDevice) []MedicalDevice {
	if len(devices) == 0 {
		return nil
	}
	index := make(map[string]int, len(devices))
	result := make([]MedicalDevice, 0, len(devices))
	for _, d := range devices {
		i, seen := index[d.ID]
		if !seen {
			index[d.ID] = len(result)
			result = append(result, d)
			continue
		}
		if d.LastMeasurementDate.After(result[i].LastMeasurementDate) {
			result[i] = d
		}
	}
	return result
}
