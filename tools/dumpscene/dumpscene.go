package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mogaika/teardown_browser/tdbin"
	"github.com/mogaika/teardown_browser/utils"
)

func printSummary(s *tdbin.Scene) {
	fmt.Printf("level      %q\n", s.Level)
	fmt.Printf("version    %d.%d.%d\n", s.Version[0], s.Version[1], s.Version[2])
	fmt.Printf("palettes   %d\n", len(s.Palettes))
	fmt.Printf("registry   %d\n", len(s.Registry))
	fmt.Printf("fires      %d\n", len(s.Fires))
	fmt.Printf("boundary   %d vertices\n", len(s.BoundaryVertices))
	fmt.Printf("entities   %d (%d roots)\n", s.CountEntities(), len(s.Entities))

	counts := make(map[tdbin.Kind]int)
	voxels := 0
	stack := append([]*tdbin.Entity(nil), s.Entities...)
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		counts[e.Kind]++
		if shape, ok := e.Payload.(*tdbin.Shape); ok {
			voxels += shape.Voxels.Volume()
		}
		stack = append(stack, e.Children...)
	}
	for kind, count := range counts {
		fmt.Printf("  %-10s %d\n", kind, count)
	}
	fmt.Printf("voxel volume %d cells\n", voxels)
}

func main() {
	var bin string
	var spewDump, yamlDump bool
	flag.StringVar(&bin, "bin", "", "Path to .bin scene save")
	flag.BoolVar(&spewDump, "spew", false, "Dump the full decoded scene with spew")
	flag.BoolVar(&yamlDump, "yaml", false, "Dump the scene header as yaml")
	flag.Parse()

	if bin == "" {
		flag.PrintDefaults()
		return
	}

	data, err := ioutil.ReadFile(bin)
	if err != nil {
		log.Fatalf("Failed to read %q: %v", bin, err)
	}
	s, err := tdbin.DecodeScene(data)
	if err != nil {
		log.Fatalf("Failed to decode scene: %v", err)
	}

	switch {
	case spewDump:
		utils.Dump(s)
	case yamlDump:
		header := map[string]interface{}{
			"level":       s.Level,
			"registry":    s.Registry,
			"environment": s.Environment,
			"player":      s.Player,
			"spawnpoint":  s.Spawnpoint,
		}
		if err := yaml.NewEncoder(os.Stdout).Encode(header); err != nil {
			log.Fatalf("Failed to encode yaml: %v", err)
		}
	default:
		printSummary(s)
	}
}
