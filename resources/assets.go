package resources

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"sync"

	"fyne.io/fyne/v2"
)

const iconSize = 48

// Tomato red, shared with the in-window accents.
var tomatoRed = color.NRGBA{R: 217, G: 17, B: 83, A: 255}

// Dull variant shown in the tray while the timer is paused.
var tomatoDull = color.NRGBA{R: 120, G: 120, B: 130, A: 255}

var (
	appIconOnce    sync.Once
	appIconRes     fyne.Resource
	pausedIconOnce sync.Once
	pausedIconRes  fyne.Resource
)

// AppIcon returns the application icon, a filled tomato-red disc.
func AppIcon() fyne.Resource {
	appIconOnce.Do(func() {
		appIconRes = renderDisc("tomato.png", tomatoRed)
	})
	return appIconRes
}

// PausedIcon returns the grayed tray icon used while paused.
func PausedIcon() fyne.Resource {
	pausedIconOnce.Do(func() {
		pausedIconRes = renderDisc("tomato-paused.png", tomatoDull)
	})
	return pausedIconRes
}

// renderDisc rasterizes a centered disc on a transparent background and
// wraps the PNG bytes in a static Fyne resource.
func renderDisc(name string, fill color.NRGBA) fyne.Resource {
	img := image.NewNRGBA(image.Rect(0, 0, iconSize, iconSize))
	center := float64(iconSize) / 2
	radius := float64(iconSize) * 0.44

	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			dx := float64(x) + 0.5 - center
			dy := float64(y) + 0.5 - center
			if math.Sqrt(dx*dx+dy*dy) <= radius {
				img.SetNRGBA(x, y, fill)
			}
		}
	}

	var buffer bytes.Buffer
	if err := png.Encode(&buffer, img); err != nil {
		// Encoding an in-memory image cannot fail for valid bounds.
		panic(err)
	}
	return fyne.NewStaticResource(name, buffer.Bytes())
}
