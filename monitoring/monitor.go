// Package monitoring turns a running mailbox driver into a small web
// server, so channel state and transfer counters can be inspected while a
// session is live.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	// Enable profiling.
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/mhu/mhu"
)

// Monitor serves the state of registered controllers over HTTP.
type Monitor struct {
	controllers []*mhu.Controller
	portNumber  int
	openBrowser bool
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port the monitor listens on. Ports below 1000
// are refused and replaced with a random port.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithBrowser makes StartServer open the dashboard URL in the local
// browser.
func (m *Monitor) WithBrowser() *Monitor {
	m.openBrowser = true
	return m
}

// RegisterController registers a controller to be monitored.
func (m *Monitor) RegisterController(c *mhu.Controller) {
	m.controllers = append(m.controllers, c)
}

// StartServer starts serving in the background and returns the listen
// address.
func (m *Monitor) StartServer() string {
	r := m.router()

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring mailbox with %s\n", url)

	go func() {
		dieOnErr(http.Serve(listener, r))
	}()

	if m.openBrowser {
		if err := browser.OpenURL(url); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open browser: %s\n", err)
		}
	}

	return url
}

func (m *Monitor) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/controllers", m.listControllers)
	r.HandleFunc("/api/controller/{name}", m.controllerDetails)
	r.HandleFunc("/api/controller/{name}/channels", m.listChannels)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)

	return r
}

func (m *Monitor) listControllers(w http.ResponseWriter, _ *http.Request) {
	names := make([]string, 0, len(m.controllers))
	for _, c := range m.controllers {
		names = append(names, c.Name())
	}

	writeJSON(w, names)
}

func (m *Monitor) controllerDetails(w http.ResponseWriter, r *http.Request) {
	ctlr := m.findControllerOr404(w, mux.Vars(r)["name"])
	if ctlr == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(ctlr)
	serializer.SetMaxDepth(1)

	dieOnErr(serializer.Serialize(w))
}

type channelRsp struct {
	Name         string `json:"name"`
	Role         string `json:"role"`
	Index        int    `json:"index"`
	IRQ          int    `json:"irq"`
	Started      bool   `json:"started"`
	Pending      bool   `json:"pending"`
	TransmitIdle bool   `json:"transmit_idle"`
	Sends        uint64 `json:"sends"`
	Completions  uint64 `json:"completions"`
	Spurious     uint64 `json:"spurious"`
}

func (m *Monitor) listChannels(w http.ResponseWriter, r *http.Request) {
	ctlr := m.findControllerOr404(w, mux.Vars(r)["name"])
	if ctlr == nil {
		return
	}

	rsp := make([]channelRsp, 0, ctlr.NumChannels())
	for _, ch := range ctlr.Channels() {
		rsp = append(rsp, channelRsp{
			Name:         ch.Name(),
			Role:         ch.Role(),
			Index:        ch.Index(),
			IRQ:          ch.IRQ(),
			Started:      ch.Started(),
			Pending:      ch.Pending(),
			TransmitIdle: ch.TransmitIdle(),
			Sends:        ch.Sends(),
			Completions:  ch.Completions(),
			Spurious:     ch.Spurious(),
		})
	}

	writeJSON(w, rsp)
}

func (m *Monitor) findControllerOr404(
	w http.ResponseWriter,
	name string,
) *mhu.Controller {
	for _, c := range m.controllers {
		if c.Name() == name {
			return c
		}
	}

	w.WriteHeader(http.StatusNotFound)
	_, err := w.Write([]byte("Controller not found"))
	dieOnErr(err)

	return nil
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	proc, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := proc.CPUPercent()
	dieOnErr(err)

	memoryInfo, err := proc.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memoryInfo.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	dieOnErr(pprof.StartCPUProfile(buf))
	time.Sleep(time.Second)
	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	dieOnErr(err)

	_, err = w.Write(data)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
