// Package web serves a read-only browser over one loaded save: JSON
// and yaml views of the decoded data, spew dumps for reversing work,
// glb/fbx export downloads and a websocket status feed.
package web

import (
	"log"
	"net/http"
	"os"
	"path"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/mogaika/teardown_browser/scene"
	"github.com/mogaika/teardown_browser/status"
	"github.com/mogaika/teardown_browser/tdbin"
)

var serverScene *tdbin.Scene
var serverCollect *scene.CollectHost
var serverReport *scene.Report
var serverOptions scene.Options

// StartServer rebuilds the scene once through a collect host (for the
// report and object views) and serves it until the process exits.
func StartServer(addr string, s *tdbin.Scene, opts scene.Options, webPath string) error {
	serverScene = s
	serverOptions = opts

	collect := scene.NewCollectHost()
	buildOpts := opts
	buildOpts.Host = collect
	buildOpts.Progress = status.ImportProgress
	if _, rep, err := scene.Build(s, buildOpts); err != nil {
		return err
	} else {
		serverCollect = collect
		serverReport = rep
	}

	r := mux.NewRouter()
	r.HandleFunc("/json/scene", HandlerSceneSummary)
	r.HandleFunc("/json/entity/{handle}", HandlerEntity)
	r.HandleFunc("/json/objects", HandlerObjects)
	r.HandleFunc("/json/report", HandlerReport)
	r.HandleFunc("/dump/entity/{handle}", HandlerDumpEntity)
	r.HandleFunc("/yaml/registry", HandlerRegistryYaml)
	r.HandleFunc("/yaml/environment", HandlerEnvironmentYaml)
	r.HandleFunc("/export/gltf", HandlerExportGLTF)
	r.HandleFunc("/export/fbx", HandlerExportFBX)
	r.HandleFunc("/ws/status", HandlerWsStatus)

	r.PathPrefix("/").Handler(http.FileServer(http.Dir(path.Join(webPath, "data"))))

	h := handlers.RecoveryHandler()(r)
	h = handlers.LoggingHandler(os.Stdout, h)

	log.Printf("[web] Starting server %v", addr)

	return http.ListenAndServe(addr, h)
}
