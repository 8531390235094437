// Package pixoo pushes rendered dashboard frames to a Divoom Pixoo64 over its
// local HTTP API (POST http://<ip>/post).
//
// A frame is sent as a single-picture animation: 64x64 RGB pixels, three
// bytes each, base64 encoded into the PicData field.
package pixoo

import (
	"encoding/base64"
	"fmt"

	"github.com/jwulff/bptrack/internal/render"
)

// Command names understood by the device.
const (
	CmdSendGif       = "Draw/SendHttpGif"
	CmdResetGifID    = "Draw/ResetHttpGifId"
	CmdGetDeviceTime = "Device/GetDeviceTime"
	CmdSetBrightness = "Channel/SetBrightness"
)

// DefaultFrameSpeed is the per-picture duration in milliseconds.
const DefaultFrameSpeed = 1000

// Command is a request with no arguments.
type Command struct {
	Command string `json:"Command"`
}

// FrameCommand uploads one picture of an animation.
type FrameCommand struct {
	Command   string `json:"Command"`
	PicNum    int    `json:"PicNum"`
	PicWidth  int    `json:"PicWidth"`
	PicOffset int    `json:"PicOffset"`
	PicID     int    `json:"PicID"`
	PicSpeed  int    `json:"PicSpeed"`
	PicData   string `json:"PicData"`
}

// BrightnessCommand sets the panel brightness.
type BrightnessCommand struct {
	Command    string `json:"Command"`
	Brightness int    `json:"Brightness"`
}

// Response is the envelope every device reply carries.
type Response struct {
	ErrorCode int `json:"error_code"`
}

// DeviceError is returned when the device answers with a non-zero error code.
type DeviceError struct {
	Command string
	Code    int
}

func (e DeviceError) Error() string {
	return fmt.Sprintf("pixoo %s: error code %d", e.Command, e.Code)
}

// EncodeFrame encodes frame pixels for the PicData field.
func EncodeFrame(frame *render.Frame) string {
	return base64.StdEncoding.EncodeToString(frame.Pixels)
}

// DecodeFrame is the inverse of EncodeFrame. The pixel count must match the
// given dimensions.
func DecodeFrame(encoded string, width, height int) (*render.Frame, error) {
	pixels, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode pic data: %w", err)
	}

	if want := width * height * render.BytesPerPixel; len(pixels) != want {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", want, len(pixels))
	}

	return &render.Frame{Width: width, Height: height, Pixels: pixels}, nil
}

// NewFrameCommand wraps a frame as picture picID of a one-picture animation.
func NewFrameCommand(frame *render.Frame, picID int) FrameCommand {
	if picID < 1 {
		picID = 1
	}
	return FrameCommand{
		Command:   CmdSendGif,
		PicNum:    1,
		PicWidth:  frame.Width,
		PicOffset: 0,
		PicID:     picID,
		PicSpeed:  DefaultFrameSpeed,
		PicData:   EncodeFrame(frame),
	}
}

// NewBrightnessCommand clamps brightness to 0-100.
func NewBrightnessCommand(brightness int) BrightnessCommand {
	return BrightnessCommand{
		Command:    CmdSetBrightness,
		Brightness: max(0, min(brightness, 100)),
	}
}
