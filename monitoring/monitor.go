// Package monitoring serves page replacement simulations over HTTP.
package monitoring

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/elastic/go-freelru"
	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/pagesim/export"
	"github.com/sarchlab/pagesim/input"
	"github.com/sarchlab/pagesim/logging"
	"github.com/sarchlab/pagesim/replacement"
	"github.com/sarchlab/pagesim/sim"
)

const defaultCacheSize = 256

// Monitor turns the simulator into a server that runs and keeps
// simulations on request.
type Monitor struct {
	portNumber int
	cacheSize  uint32
	logger     logging.Logger
	idGen      sim.IDGenerator

	cacheOnce sync.Once
	results   *freelru.SyncedLRU[string, replacement.Result]
	runIDs    *freelru.SyncedLRU[uint64, string]

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar

	listener net.Listener
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{
		cacheSize: defaultCacheSize,
		logger:    logging.Discard,
		idGen:     sim.NewXIDGenerator(),
	}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithCacheSize sets how many runs the monitor keeps.
func (m *Monitor) WithCacheSize(size uint32) *Monitor {
	if size == 0 {
		panic("cache size must be positive")
	}

	m.cacheSize = size

	return m
}

// WithLogger sets the logger used for requests.
func (m *Monitor) WithLogger(logger logging.Logger) *Monitor {
	m.logger = logger
	return m
}

// WithIDGenerator sets the generator of run IDs.
func (m *Monitor) WithIDGenerator(g sim.IDGenerator) *Monitor {
	m.idGen = g
	return m
}

func (m *Monitor) initCache() {
	m.cacheOnce.Do(func() {
		var err error

		m.results, err = freelru.NewSynced[string, replacement.Result](
			m.cacheSize, hashString)
		dieOnErr(err)

		m.runIDs, err = freelru.NewSynced[uint64, string](
			m.cacheSize, hashUint64)
		dieOnErr(err)
	})
}

func hashString(s string) uint32 {
	return uint32(xxhash.Sum64String(s))
}

func hashUint64(k uint64) uint32 {
	return uint32(k ^ k>>32)
}

// Record keeps a finished run and returns its run ID.
func (m *Monitor) Record(result replacement.Result) string {
	m.initCache()

	id := m.idGen.Generate()
	m.results.Add(id, result)

	return id
}

// Lookup returns a kept run.
func (m *Monitor) Lookup(id string) (replacement.Result, bool) {
	m.initCache()

	return m.results.Get(id)
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        m.idGen.Generate(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// Handler returns the router that serves the monitoring API.
func (m *Monitor) Handler() http.Handler {
	m.initCache()

	r := mux.NewRouter()

	api := r.PathPrefix("/api").Methods(http.MethodGet).Subrouter()
	api.HandleFunc("/policies", m.listPolicies)
	api.HandleFunc("/simulate", m.simulate)
	api.HandleFunc("/compare", m.compare)
	api.HandleFunc("/result/{id}", m.showResult)
	api.HandleFunc("/progress", m.listProgressBars)
	api.HandleFunc("/resource", m.listResources)
	api.HandleFunc("/profile", m.collectProfile)

	return r
}

// StartServer starts the monitor as a web server and returns the port it
// listens on.
func (m *Monitor) StartServer() int {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	m.listener = listener
	port := listener.Addr().(*net.TCPAddr).Port

	fmt.Fprintf(
		os.Stderr,
		"Monitoring simulation with http://localhost:%d\n", port)

	handler := m.Handler()

	go func() {
		err := http.Serve(listener, handler)
		if err != nil && !errors.Is(err, net.ErrClosed) {
			dieOnErr(err)
		}
	}()

	return port
}

// URL returns the address of the running server.
func (m *Monitor) URL() string {
	if m.listener == nil {
		return ""
	}

	return fmt.Sprintf("http://localhost:%d",
		m.listener.Addr().(*net.TCPAddr).Port)
}

// OpenBrowser opens the policy list of the running server in the default
// browser.
func (m *Monitor) OpenBrowser() error {
	if m.listener == nil {
		return errors.New("monitor is not running")
	}

	return browser.OpenURL(m.URL() + "/api/policies")
}

// StopServer closes the listener started by StartServer.
func (m *Monitor) StopServer() error {
	if m.listener == nil {
		return nil
	}

	return m.listener.Close()
}

type policyRsp struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (m *Monitor) listPolicies(w http.ResponseWriter, _ *http.Request) {
	rsp := make([]policyRsp, 0, len(replacement.Policies()))
	for _, p := range replacement.Policies() {
		rsp = append(rsp, policyRsp{
			Name:        p.String(),
			Title:       p.Title(),
			Description: p.Description(),
		})
	}

	writeJSON(w, rsp)
}

type runRsp struct {
	ID string `json:"id"`
	replacement.Result
}

type runRequest struct {
	seq    []int
	frames int
	seed   uint64
	seeded bool
}

// key identifies the runs that can share a cached result. Random runs only
// share one when they use the same seed.
func (req runRequest) key(policy replacement.Policy) (uint64, bool) {
	if policy != replacement.Random {
		return export.Fingerprint(policy, req.frames, req.seq), true
	}

	if !req.seeded {
		return 0, false
	}

	return export.FingerprintSeeded(policy, req.frames, req.seq, req.seed), true
}

func parseRunRequest(r *http.Request) (runRequest, error) {
	q := r.URL.Query()

	seq, err := input.ParseStrict(q.Get("sequence"))
	if err != nil {
		return runRequest{}, err
	}

	frames := 3
	if text := q.Get("frames"); text != "" {
		frames, err = input.ParseFrameCount(text)
		if err != nil {
			return runRequest{}, err
		}
	}

	req := runRequest{
		seq:    seq,
		frames: input.ClampFrameCount(frames),
	}

	if text := q.Get("seed"); text != "" {
		seed, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return runRequest{}, fmt.Errorf("invalid seed %q: %w", text, err)
		}

		req.seed = seed
		req.seeded = true
	}

	return req, nil
}

func (m *Monitor) simulate(w http.ResponseWriter, r *http.Request) {
	policy, err := replacement.ParsePolicy(r.URL.Query().Get("policy"))
	if err != nil {
		badRequest(w, err)
		return
	}

	req, err := parseRunRequest(r)
	if err != nil {
		badRequest(w, err)
		return
	}

	writeJSON(w, m.run(policy, req))
}

func (m *Monitor) run(policy replacement.Policy, req runRequest) runRsp {
	key, reusable := req.key(policy)

	if reusable {
		if id, ok := m.runIDs.Get(key); ok {
			if result, ok := m.results.Get(id); ok {
				m.logger.Debug("run served from cache", "run", id)
				return runRsp{ID: id, Result: result}
			}
		}
	}

	id := m.idGen.Generate()
	opts := []replacement.Option{replacement.WithRunID(id)}
	if req.seeded {
		opts = append(opts, replacement.WithRandSource(
			replacement.NewSeededRandSource(req.seed)))
	}

	result := replacement.Simulate(policy, req.seq, req.frames, opts...)

	m.results.Add(id, result)
	if reusable {
		m.runIDs.Add(key, id)
	}

	m.logger.Info("run finished",
		"run", id,
		"policy", policy.String(),
		"frames", req.frames,
		"faults", result.TotalPageFaults)

	return runRsp{ID: id, Result: result}
}

type compareRsp struct {
	Runs []runRsp `json:"runs"`
	Best string   `json:"best"`
}

func (m *Monitor) compare(w http.ResponseWriter, r *http.Request) {
	req, err := parseRunRequest(r)
	if err != nil {
		badRequest(w, err)
		return
	}

	policies := replacement.Policies()
	bar := m.CreateProgressBar("compare", uint64(len(policies)))
	defer m.CompleteProgressBar(bar)

	rsp := compareRsp{Runs: make([]runRsp, 0, len(policies))}
	results := make([]replacement.Result, 0, len(policies))

	for _, p := range policies {
		bar.IncrementInProgress(1)

		run := m.run(p, req)
		rsp.Runs = append(rsp.Runs, run)
		results = append(results, run.Result)

		bar.MoveInProgressToFinished(1)
	}

	if best, ok := replacement.BestPolicy(results); ok {
		rsp.Best = best.String()
	}

	writeJSON(w, rsp)
}

func (m *Monitor) showResult(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	result, ok := m.results.Get(id)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Run not found"))
		dieOnErr(err)

		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(&result)
	serializer.SetMaxDepth(4)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	bars := m.progressBars
	if bars == nil {
		bars = []*ProgressBar{}
	}

	writeJSON(w, bars)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func badRequest(w http.ResponseWriter, err error) {
	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprintf(w, "Error: %s", err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
