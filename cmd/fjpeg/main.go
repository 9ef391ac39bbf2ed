// Command fjpeg encodes a raw planar YCbCr 4:2:0 (or grayscale) image into
// a baseline JPEG file.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	fjpeg "github.com/gofjpeg/fjpeg"
)

func usage() {
	fmt.Fprintf(os.Stderr, `fjpeg - baseline JPEG encoder

Usage: fjpeg -i <input> -r <WxH> -q <quality> -o <output> [-v]

  -i  input raw planar YCbCr file (4:2:0, or grayscale with -c 1)
  -r  resolution as WxH, e.g. 1920x1080
  -q  quality, 1-100 (default 50)
  -c  channels, 1 (grayscale) or 3 (default 3)
  -o  output JPEG file
  -v  dump the emitted segment structure to stderr
  -h  show this help
`)
}

func main() {
	var in, out, resolution string
	var quality, channels int
	var verbose, help bool

	flag.StringVar(&in, "i", "", "input raw planar YCbCr file")
	flag.StringVar(&resolution, "r", "", "resolution, WxH")
	flag.IntVar(&quality, "q", 50, "quality, 1-100")
	flag.IntVar(&channels, "c", 3, "channels, 1 or 3")
	flag.StringVar(&out, "o", "", "output JPEG file")
	flag.BoolVar(&verbose, "v", false, "dump segment structure to stderr")
	flag.BoolVar(&help, "h", false, "show help")
	flag.Parse()

	if help {
		usage()
		return
	}
	if in == "" || resolution == "" || out == "" {
		usage()
		os.Exit(1)
	}

	var width, height int
	if _, err := fmt.Sscanf(resolution, "%dx%d", &width, &height); err != nil {
		fmt.Fprintf(os.Stderr, "fjpeg: bad resolution %q: %v\n", resolution, err)
		os.Exit(1)
	}

	readStart := time.Now()
	data, err := os.ReadFile(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fjpeg: cannot read %s: %v\n", in, err)
		os.Exit(1)
	}

	req, err := planesFromRaw(data, width, height, channels)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fjpeg: %v\n", err)
		os.Exit(1)
	}
	req.Quality = quality
	readElapsed := time.Since(readStart)

	output, err := os.Create(out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fjpeg: cannot create %s: %v\n", out, err)
		os.Exit(1)
	}

	encodeStart := time.Now()
	result, err := fjpeg.EncodeBytes(req)
	if err != nil {
		output.Close()
		os.Remove(out)
		fmt.Fprintf(os.Stderr, "fjpeg: encode failed: %v\n", err)
		os.Exit(1)
	}
	encodeElapsed := time.Since(encodeStart)

	if _, err := output.Write(result.Bytes); err != nil {
		output.Close()
		os.Remove(out)
		fmt.Fprintf(os.Stderr, "fjpeg: cannot write %s: %v\n", out, err)
		os.Exit(1)
	}
	if err := output.Close(); err != nil {
		os.Remove(out)
		fmt.Fprintf(os.Stderr, "fjpeg: cannot close %s: %v\n", out, err)
		os.Exit(1)
	}

	if verbose {
		if err := fjpeg.Dump(os.Stderr, result); err != nil {
			fmt.Fprintf(os.Stderr, "fjpeg: dump failed: %v\n", err)
		}
	}

	fmt.Printf("read %v, encode %v, %d bytes -> %s\n", readElapsed, encodeElapsed, len(result.Bytes), out)
}

// planesFromRaw splits a flat planar YCbCr buffer into the Y/Cb/Cr slices
// a Request expects.
func planesFromRaw(data []byte, width, height, channels int) (*fjpeg.Request, error) {
	ySize := width * height
	if len(data) < ySize {
		return nil, fmt.Errorf("input too short for %dx%d Y plane: need %d bytes, got %d", width, height, ySize, len(data))
	}
	req := &fjpeg.Request{Width: width, Height: height, Channels: channels, Y: data[:ySize]}
	if channels == 3 {
		cw, ch := (width+1)/2, (height+1)/2
		cSize := cw * ch
		if len(data) < ySize+2*cSize {
			return nil, fmt.Errorf("input too short for %dx%d 4:2:0 chroma planes: need %d bytes total, got %d", width, height, ySize+2*cSize, len(data))
		}
		req.Cb = data[ySize : ySize+cSize]
		req.Cr = data[ySize+cSize : ySize+2*cSize]
	}
	return req, nil
}
