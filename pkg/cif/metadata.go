package cif

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Metadata is the optional structured document stored between the header
// and the payload, serialized as JSON. Field names are wire values.
type Metadata struct {
	// ImageID uniquely identifies this encoded image.
	ImageID string `json:"image_id,omitempty"`
	// CreationDate is a Unix timestamp in seconds.
	CreationDate int64 `json:"creation_date"`
	// Author names the creator.
	Author string `json:"author,omitempty"`
	// CameraModel records the capture device.
	CameraModel string `json:"camera_model,omitempty"`
	// ExposureTime is in seconds.
	ExposureTime float64 `json:"exposure_time,omitempty"`
	// ISO is the sensor speed.
	ISO uint32 `json:"iso,omitempty"`
	// FNumber is the aperture.
	FNumber float64 `json:"f_number,omitempty"`
	// FocalLength is in millimeters.
	FocalLength float64 `json:"focal_length,omitempty"`
	// CustomFields holds arbitrary key-value pairs, e.g. the lossy
	// quality setting under "quality".
	CustomFields map[string]string `json:"custom_fields,omitempty"`
}

// NewMetadata returns metadata stamped with the current time and a fresh
// image ID.
func NewMetadata() Metadata {
	return Metadata{
		ImageID:      uuid.NewString(),
		CreationDate: time.Now().Unix(),
	}
}

// SetCustom records a key-value pair, allocating the map on first use.
func (m *Metadata) SetCustom(key, value string) {
	if m.CustomFields == nil {
		m.CustomFields = make(map[string]string)
	}
	m.CustomFields[key] = value
}

// marshalMetadata serializes to the JSON wire form.
func marshalMetadata(m Metadata) ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding metadata: %v", ErrFormat, err)
	}
	return data, nil
}

// unmarshalMetadata parses the JSON wire form.
func unmarshalMetadata(data []byte) (Metadata, error) {
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return Metadata{}, fmt.Errorf("%w: decoding metadata: %v", ErrFormat, err)
	}
	return m, nil
}
