//go:build rp2040

package main

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ssd1306"
	"tinygo.org/x/tinyfont"
)

// textBaseline moves a line's top edge down to the Org01 baseline
const textBaseline = 6

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// oledDisplay draws text lines onto the SSD1306 frame buffer. It satisfies
// both winding.Display and the drivers.Displayer that tinyfont renders to.
type oledDisplay struct {
	size     func() (int16, int16)
	setPixel func(x, y int16, c color.RGBA)
	flush    func() error
	clear    func()
}

func newOLEDDisplay(bus *machine.I2C) (*oledDisplay, error) {
	err := bus.Configure(machine.I2CConfig{
		SDA:       pinOLEDSDA,
		SCL:       pinOLEDSCL,
		Frequency: 400 * machine.KHz,
	})
	if err != nil {
		return nil, err
	}

	dev := ssd1306.NewI2C(bus)
	dev.Configure(ssd1306.Config{
		Width:   oledWidth,
		Height:  oledHeight,
		Address: oledAddress,
	})
	dev.ClearDisplay()

	return &oledDisplay{
		size:     dev.Size,
		setPixel: dev.SetPixel,
		flush:    dev.Display,
		clear:    dev.ClearBuffer,
	}, nil
}

func (d *oledDisplay) Size() (int16, int16) {
	return d.size()
}

func (d *oledDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.setPixel(x, y, c)
}

// Display pushes the frame buffer over I2C
func (d *oledDisplay) Display() error {
	return d.flush()
}

// Clear blanks the frame buffer without touching the panel
func (d *oledDisplay) Clear() {
	d.clear()
}

// DrawLine renders text with its top edge at y
func (d *oledDisplay) DrawLine(x, y int16, text string) {
	tinyfont.WriteLine(d, &tinyfont.Org01, x, y+textBaseline, text, white)
}

// Present flushes the frame
func (d *oledDisplay) Present() error {
	return d.flush()
}
