package main

import (
	"fmt"
	"log"
	"os"

	"github.com/pixelforge/imgarray/internal/array"
	"github.com/pixelforge/imgarray/internal/codec"
	"github.com/pixelforge/imgarray/internal/imgio"
	"github.com/pixelforge/imgarray/internal/pixel"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Logging goes to stderr; stdout carries command output.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "--version", "-v", "version":
		fmt.Printf("imgarray %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
	case "--help", "-h", "help":
		usage()
	case "info":
		run(cmdInfo, 1)
	case "convert":
		run(cmdConvert, 2)
	case "dump":
		run(cmdDump, 2)
	case "undump":
		run(cmdUndump, 2)
	case "show":
		run(cmdShow, 1)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func run(cmd func(args []string) error, argc int) {
	args := os.Args[2:]
	if len(args) < argc {
		usage()
		os.Exit(2)
	}
	if err := cmd(args); err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func usage() {
	fmt.Println("imgarray - convert between image files and numeric pixel arrays")
	fmt.Println()
	fmt.Println("Usage: imgarray COMMAND [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  info FILE             Print pixel mode, size and element kind")
	fmt.Println("  convert SRC DST [FMT] Re-encode an image; format from FMT or DST extension")
	fmt.Println("  dump SRC DST          Decode an image into a raw array file")
	fmt.Println("  undump SRC DST [FMT]  Encode a raw array file back into an image")
	fmt.Println("  show FILE             Open an image in the platform viewer")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
}

func cmdInfo(args []string) error {
	im, err := codec.Open(args[0])
	if err != nil {
		return err
	}
	w, h := im.Size()
	fmt.Printf("mode: %s (base %s)\n", im.Mode, im.Mode.Base)
	fmt.Printf("size: %dx%d\n", w, h)
	if im.Mode == pixel.ModePalette {
		fmt.Printf("palette: %d entries, used [%d, %d)\n", len(im.Palette), im.Extrema[0], im.Extrema[1])
	}

	arr, err := pixel.ToArray(im, array.Auto)
	if err != nil {
		return err
	}
	fmt.Printf("array: shape %v, kind %s, range [%g, %g]\n", arr.Shape, arr.Kind, arr.Min(), arr.Max())
	return nil
}

func cmdConvert(args []string) error {
	hint := ""
	if len(args) > 2 {
		hint = args[2]
	}
	arr, err := imgio.LoadImage(args[0], array.Auto)
	if err != nil {
		return err
	}
	return imgio.SaveImage(args[1], arr, hint)
}

func cmdDump(args []string) error {
	arr, err := imgio.LoadImage(args[0], array.Auto)
	if err != nil {
		return err
	}
	return imgio.DumpArray(args[1], arr)
}

func cmdUndump(args []string) error {
	hint := ""
	if len(args) > 2 {
		hint = args[2]
	}
	arr, err := imgio.LoadArray(args[0])
	if err != nil {
		return err
	}
	return imgio.SaveImage(args[1], arr, hint)
}

func cmdShow(args []string) error {
	arr, err := imgio.LoadImage(args[0], array.Auto)
	if err != nil {
		return err
	}
	return imgio.PreviewImage(arr)
}
