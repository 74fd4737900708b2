package web

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/mogaika/teardown_browser/scene"
	"github.com/mogaika/teardown_browser/status"
	"github.com/mogaika/teardown_browser/tdbin"
	"github.com/mogaika/teardown_browser/utils"
	"github.com/mogaika/teardown_browser/webutils"
)

type sceneSummary struct {
	Level       string
	Version     string
	Entities    int
	KindCounts  map[string]int
	Palettes    int
	Registry    int
	Fires       int
	RootHandles []uint32
	Report      *scene.Report
}

func HandlerSceneSummary(w http.ResponseWriter, r *http.Request) {
	summary := &sceneSummary{
		Level: serverScene.Level,
		Version: fmt.Sprintf("%d.%d.%d",
			serverScene.Version[0], serverScene.Version[1], serverScene.Version[2]),
		Entities:   serverScene.CountEntities(),
		KindCounts: make(map[string]int),
		Palettes:   len(serverScene.Palettes),
		Registry:   len(serverScene.Registry),
		Fires:      len(serverScene.Fires),
		Report:     serverReport,
	}
	stack := append([]*tdbin.Entity(nil), serverScene.Entities...)
	for _, e := range serverScene.Entities {
		summary.RootHandles = append(summary.RootHandles, e.Handle)
	}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		summary.KindCounts[e.Kind.String()]++
		stack = append(stack, e.Children...)
	}
	webutils.WriteJson(w, summary)
}

func handlerEntityCommon(w http.ResponseWriter, r *http.Request) *tdbin.Entity {
	handle, err := strconv.ParseUint(mux.Vars(r)["handle"], 10, 32)
	if err != nil {
		webutils.WriteError(w, fmt.Errorf("handle %q is not an integer", mux.Vars(r)["handle"]))
		return nil
	}
	e := serverScene.FindEntity(uint32(handle))
	if e == nil {
		webutils.WriteError(w, fmt.Errorf("no entity with handle %d", handle))
		return nil
	}
	return e
}

func HandlerEntity(w http.ResponseWriter, r *http.Request) {
	if e := handlerEntityCommon(w, r); e != nil {
		webutils.WriteJson(w, e)
	}
}

func HandlerDumpEntity(w http.ResponseWriter, r *http.Request) {
	e := handlerEntityCommon(w, r)
	if e == nil {
		return
	}
	dump := utils.SDump(e)
	if o, ok := e.Payload.(*tdbin.Other); ok {
		dump += "\npayload: " + utils.BytesToOneLineString(o.Raw) + "\n"
	}
	webutils.WriteText(w, dump)
}

func HandlerObjects(w http.ResponseWriter, r *http.Request) {
	webutils.WriteJson(w, serverCollect.Objects)
}

func HandlerReport(w http.ResponseWriter, r *http.Request) {
	webutils.WriteJson(w, serverReport)
}

func HandlerRegistryYaml(w http.ResponseWriter, r *http.Request) {
	webutils.WriteYaml(w, serverScene.Registry)
}

func HandlerEnvironmentYaml(w http.ResponseWriter, r *http.Request) {
	webutils.WriteYaml(w, serverScene.Environment)
}

func exportName(ext string) string {
	if serverScene.Level != "" {
		return serverScene.Level + ext
	}
	return "scene" + ext
}

func HandlerExportGLTF(w http.ResponseWriter, r *http.Request) {
	host := scene.NewGLTFHost()
	opts := serverOptions
	opts.Host = host
	if _, _, err := scene.Build(serverScene, opts); err != nil {
		webutils.WriteError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := host.Save(&buf); err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteFile(w, &buf, exportName(".glb"))
}

func HandlerExportFBX(w http.ResponseWriter, r *http.Request) {
	name := exportName(".fbx")
	host := scene.NewFBXHost(name)
	opts := serverOptions
	opts.Host = host
	if _, _, err := scene.Build(serverScene, opts); err != nil {
		webutils.WriteError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := host.Save(&buf); err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteFile(w, &buf, name)
}

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func HandlerWsStatus(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	status.NewClient(conn)
}
