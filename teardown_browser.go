package main

import (
	"flag"
	"io/ioutil"
	"log"
	"os"

	"github.com/mogaika/teardown_browser/config"
	"github.com/mogaika/teardown_browser/scene"
	"github.com/mogaika/teardown_browser/tdbin"
	"github.com/mogaika/teardown_browser/web"
)

func exportGLTF(s *tdbin.Scene, opts scene.Options, path string) error {
	host := scene.NewGLTFHost()
	opts.Host = host
	if _, rep, err := scene.Build(s, opts); err != nil {
		return err
	} else {
		logReport(rep)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return host.Save(f)
}

func exportFBX(s *tdbin.Scene, opts scene.Options, path string) error {
	host := scene.NewFBXHost(path)
	opts.Host = host
	if _, rep, err := scene.Build(s, opts); err != nil {
		return err
	} else {
		logReport(rep)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return host.Save(f)
}

func logReport(rep *scene.Report) {
	log.Printf("[import] processed %d entities: %d meshes (%d voxels), %d lights, %d empties, %d skipped, %d errored",
		rep.Processed, rep.Meshes, rep.Voxels, rep.Lights, rep.Empties, rep.Skipped, rep.Errored)
	for _, warning := range rep.Warnings {
		log.Printf("[import] warning: %v", warning)
	}
}

func main() {
	var bin, gltfPath, fbxPath, addr, settingsPath string
	var maxVoxels int
	var voxelScale float64
	var parentLargeRoots bool
	flag.StringVar(&bin, "bin", "", "Path to .bin scene save")
	flag.StringVar(&gltfPath, "gltf", "", "Export scene to binary gltf file")
	flag.StringVar(&fbxPath, "fbx", "", "Export scene to fbx file")
	flag.StringVar(&addr, "i", "", "Address of server")
	flag.IntVar(&maxVoxels, "maxvoxels", 0, "Voxel count limit per shape (0 - use settings)")
	flag.Float64Var(&voxelScale, "voxelscale", 0, "Scale of one voxel in output units (0 - use settings)")
	flag.BoolVar(&parentLargeRoots, "parentlargeroots", false, "Reserved large root body parenting policy")
	flag.StringVar(&settingsPath, "settings", "settings.yaml", "Path to settings file")
	flag.Parse()

	if bin == "" {
		flag.PrintDefaults()
		return
	}

	if err := config.LoadSettings(settingsPath); err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	settings := config.GetSettings()
	if maxVoxels != 0 {
		settings.MaxVoxels = maxVoxels
	}
	if voxelScale != 0 {
		settings.VoxelScale = float32(voxelScale)
	}
	if parentLargeRoots {
		settings.ParentLargeRootBodies = true
	}
	// Exports alone exit afterwards; -i forces the server on top.
	serve := gltfPath == "" && fbxPath == ""
	if addr != "" {
		serve = true
	} else {
		addr = settings.ListenAddr
	}

	data, err := ioutil.ReadFile(bin)
	if err != nil {
		log.Fatalf("Failed to read %q: %v", bin, err)
	}

	s, err := tdbin.DecodeScene(data)
	if err != nil {
		log.Fatalf("Failed to decode scene: %v", err)
	}
	log.Printf("[main] loaded level %q version %d.%d.%d with %d entities",
		s.Level, s.Version[0], s.Version[1], s.Version[2], s.CountEntities())

	opts := settings.ImportOptions()

	if gltfPath != "" {
		if err := exportGLTF(s, opts, gltfPath); err != nil {
			log.Fatalf("Failed to export gltf: %v", err)
		}
		log.Printf("[main] exported %q", gltfPath)
	}
	if fbxPath != "" {
		if err := exportFBX(s, opts, fbxPath); err != nil {
			log.Fatalf("Failed to export fbx: %v", err)
		}
		log.Printf("[main] exported %q", fbxPath)
	}

	if serve {
		if err := web.StartServer(addr, s, opts, "web"); err != nil {
			log.Fatal(err)
		}
	}
}
