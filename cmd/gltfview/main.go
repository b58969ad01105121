package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/binzume/gltfscene/converter"
	"github.com/binzume/gltfscene/gltfreader"
	"github.com/binzume/gltfscene/registry"
	"github.com/binzume/gltfscene/scene"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

func loadOption(confFile, input string) (*converter.GLTFToSceneOption, error) {
	if confFile == "" {
		confFile = input[0:len(input)-len(filepath.Ext(input))] + ".gltfscene.yaml"
		if _, err := os.Stat(confFile); err != nil {
			return &converter.GLTFToSceneOption{}, nil
		}
	}
	return converter.LoadOptionFile(confFile)
}

func output(charset string) (io.Writer, error) {
	if charset == "" {
		return os.Stdout, nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, err
	}
	return transform.NewWriter(os.Stdout, enc.NewEncoder()), nil
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s input.gltf|input.glb\n", os.Args[0])
		flag.PrintDefaults()
	}
	confFile := flag.String("config", "", "loader option file (.yaml)")
	noTextures := flag.Bool("notextures", false, "do not load textures")
	maxTex := flag.Int("maxtex", 0, "max texture size. 0:unlimited")
	bbox := flag.Bool("bbox", false, "print bounding box")
	texDir := flag.String("texdir", "", "write decoded textures to this directory (.webp)")
	charset := flag.String("charset", "", "output charset (e.g. shift_jis)")
	verbose := flag.Bool("v", false, "verbose")
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		return
	}
	input := flag.Arg(0)

	opt, err := loadOption(*confFile, input)
	if err != nil {
		log.Fatal(err)
	}
	if *noTextures {
		opt.NoTextures = true
	}
	if *maxTex > 0 {
		opt.MaxTextureSize = *maxTex
	}
	if lv, ok := registry.ParseSeverity(opt.NotifyLevel); ok {
		registry.SetNotifyLevel(lv)
	}
	if *verbose {
		registry.SetNotifyLevel(registry.Debug)
	}

	reg := registry.New()
	reg.Register(gltfreader.New(opt))
	node, err := reg.ReadNodeFile(input, nil)
	if err != nil {
		log.Fatal(err)
	}

	w, err := output(*charset)
	if err != nil {
		log.Fatal(err)
	}
	if err := scene.Dump(w, node); err != nil {
		log.Fatal(err)
	}
	if *bbox {
		if min, max, ok := scene.BoundingBox(node); ok {
			fmt.Fprintf(w, "bbox: (%g, %g, %g) - (%g, %g, %g)\n", min.X, min.Y, min.Z, max.X, max.Y, max.Z)
		} else {
			fmt.Fprintln(w, "bbox: empty")
		}
	}
	if tw, ok := w.(*transform.Writer); ok {
		tw.Close()
	}

	if *texDir != "" {
		n, err := exportTextures(node, *texDir)
		if err != nil {
			log.Fatal(err)
		}
		log.Println("textures:", n)
	}
}
