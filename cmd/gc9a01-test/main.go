package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disintegration/imaging"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/goregular"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/gc9a01"
	"github.com/BeatGlow/gc9a01/internal/gpioline"
	"github.com/BeatGlow/gc9a01/pixel"
)

var (
	portFlag       = flag.String("port", "", "SPI port (default: use first available)")
	speedFlag      = flag.Int64("speed", 40, "SPI speed in MHz")
	resetPinFlag   = flag.String("reset", gc9a01.DefaultResetPin, "Reset GPIO pin")
	dcPinFlag      = flag.String("dc", gc9a01.DefaultDCPin, "Data/Command GPIO pin (DC)")
	blPinFlag      = flag.String("bl", "", "Backlight GPIO pin")
	chipFlag       = flag.String("gpiochip", "", "Use GPIO character device lines on this chip, pins are line offsets")
	rotateFlag     = flag.String("rotate", "", "Display rotation")
	basicFlag      = flag.Bool("basic", false, "Use basic (unbuffered) mode")
	brightnessFlag = flag.Uint8("brightness", gc9a01.BrightnessNormal, "Display brightness")
	imageFlag      = flag.String("image", "", "Show an image file instead of the gradient")
	textFlag       = flag.String("text", "GC9A01", "Text to render")
	debugFlag      = flag.Bool("debug", false, "Enable debug logging")
)

func main() {
	flag.Parse()

	logger := zap.NewNop()
	if *debugFlag {
		logger, _ = zap.NewDevelopment()
	}
	defer func() { _ = logger.Sync() }()

	rotation, err := parseRotation(*rotateFlag)
	if err != nil {
		fatal(err)
	}
	logger.Info("using rotation", zap.Stringer("rotation", rotation))

	if _, err = host.Init(); err != nil {
		fatal(err)
	}

	reset, err := outputPin(*resetPinFlag)
	if err != nil {
		fatal(err)
	}
	dc, err := outputPin(*dcPinFlag)
	if err != nil {
		fatal(err)
	}

	conn, err := gc9a01.OpenSPI(&gc9a01.SPIConfig{
		Port:      *portFlag,
		Speed:     physic.Frequency(*speedFlag) * physic.MegaHertz,
		BatchSize: gc9a01.DefaultSPIConfig.BatchSize,
		Reset:     reset,
		DC:        dc,
		Logger:    logger,
	})
	if err != nil {
		fatal(err)
	}
	logger.Info("using connection", zap.Stringer("conn", conn))

	config := gc9a01.DefaultConfig
	config.Rotation = rotation
	config.Brightness = *brightnessFlag
	config.Logger = logger
	if *basicFlag {
		config.Mode = gc9a01.BasicMode
	}
	if *blPinFlag != "" {
		if config.Backlight, err = outputPin(*blPinFlag); err != nil {
			fatal(err)
		}
	}

	display, err := gc9a01.New(conn, &config)
	if err != nil {
		fatal(err)
	}
	defer func() {
		if err := display.Close(); err != nil {
			logger.Warn("close failed", zap.Error(err))
		}
	}()
	if err = display.Init(); err != nil {
		fatal(err)
	}
	logger.Info("using driver", zap.Stringer("display", display), zap.Stringer("mode", display.Mode()))

	if display.Mode() == gc9a01.BasicMode {
		if err = basic(display); err != nil {
			fatal(err)
		}
		wait()
		return
	}

	face, err := truetype.Parse(goregular.TTF)
	if err != nil {
		fatal(err)
	}

	var photo image.Image
	if *imageFlag != "" {
		src, err := imaging.Open(*imageFlag)
		if err != nil {
			fatal(err)
		}
		size := display.Size()
		photo = imaging.Fill(src, size.X, size.Y, imaging.Center, imaging.Lanczos)
	}

	var (
		ticker = time.NewTicker(50 * time.Millisecond)
		stop   = make(chan os.Signal, 1)
		offset int
	)
	defer ticker.Stop()
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	fmt.Println("hit control-c to stop...")
	for {
		img := display.Image()
		if photo != nil {
			draw.Draw(img, img.Bounds(), photo, image.Point{}, draw.Src)
		} else {
			gradient(img, offset)
		}
		ring(img, pixel.White)
		if err = text(img, face, *textFlag); err != nil {
			fatal(err)
		}
		if err = display.Flush(); err != nil {
			fatal(err)
		}

		offset++
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
	}
}

// basic draws a static test pattern with the immediate drawing calls.
func basic(display *gc9a01.Dev) error {
	if err := display.Clear(pixel.Black); err != nil {
		return err
	}
	var (
		size  = display.Size()
		third = size.Y / 3
	)
	for i, c := range []pixel.CRGB16{pixel.Red, pixel.Green, pixel.Blue} {
		if err := display.FillSolid(image.Rect(0, i*third, size.X, (i+1)*third), c); err != nil {
			return err
		}
	}
	for x := 0; x < size.X; x++ {
		if err := display.SetPixel(x, size.Y/2, pixel.White); err != nil {
			return err
		}
	}
	return nil
}

func gradient(img draw.Image, offset int) {
	r := img.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(x + y + offset),
				G: uint8(x - y + offset),
				B: uint8(x + y - offset),
				A: 0xff,
			})
		}
	}
}

func text(img draw.Image, face *truetype.Font, s string) error {
	const size = 28
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(face)
	ctx.SetFontSize(size)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.NewUniform(pixel.White))

	r := img.Bounds()
	_, err := ctx.DrawString(s, freetype.Pt(r.Dx()/2-len(s)*size/4, r.Dy()/2+size/3))
	return err
}

func parseRotation(value string) (gc9a01.Rotation, error) {
	switch value {
	case "", "no", "0":
		return gc9a01.NoRotation, nil
	case "90", "right", "cw":
		return gc9a01.Rotate90, nil
	case "180", "flip":
		return gc9a01.Rotate180, nil
	case "270", "left", "ccw":
		return gc9a01.Rotate270, nil
	default:
		return 0, fmt.Errorf("invalid rotation %q specified", value)
	}
}

// outputPin resolves a pin name through the periph registry, or a line offset on --gpiochip.
func outputPin(name string) (gc9a01.OutputPin, error) {
	if *chipFlag != "" {
		var offset int
		if _, err := fmt.Sscanf(name, "GPIO%d", &offset); err != nil {
			if _, err = fmt.Sscanf(name, "%d", &offset); err != nil {
				return nil, fmt.Errorf("invalid line %q: %w", name, err)
			}
		}
		line, err := gpioline.Open(*chipFlag, offset)
		if err != nil {
			return nil, err
		}
		return line, nil
	}
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("unknown GPIO pin %q", name)
	}
	return pin, nil
}

func wait() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	fmt.Println("hit control-c to stop...")
	<-stop
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
