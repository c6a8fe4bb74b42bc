// Command circuitsim loads a persisted circuit, compiles it, and serves a
// small debug HTTP API over it: drive external inputs, step the
// interpreter, and read external outputs back. Each step's program id and
// remaining dirty-node count are recorded to a sqlite database so a run's
// progress can be inspected after the fact — this binary is a demo harness for the
// core packages, not part of the simulator's public API (spec §6: "no
// environment variables, no CLI, no files accessed by the core").
package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	_ "github.com/mattn/go-sqlite3"
	"github.com/tebeka/atexit"

	"github.com/gorilla/mux"

	"github.com/sarchlab/circuitsim/persist"
	"github.com/sarchlab/circuitsim/vm"
)

func main() {
	circuitPath := flag.String("circuit", "", "path to a persisted circuit YAML file")
	dbPath := flag.String("db", "circuitsim.db", "path to the sqlite snapshot database")
	addr := flag.String("addr", ":8080", "HTTP listen address")
	flag.Parse()

	if *circuitPath == "" {
		fmt.Fprintln(os.Stderr, "circuitsim: -circuit is required")
		os.Exit(2)
	}

	data, err := os.ReadFile(*circuitPath)
	if err != nil {
		slog.Error("reading circuit file", "path", *circuitPath, "err", err)
		atexit.Exit(1)
	}

	c, err := persist.Decode(data)
	if err != nil {
		slog.Error("decoding circuit", "err", err)
		atexit.Exit(1)
	}

	prog := vm.Compile(c.Graph())
	state := prog.NewState()

	db, err := sql.Open("sqlite3", *dbPath)
	if err != nil {
		slog.Error("opening snapshot database", "path", *dbPath, "err", err)
		atexit.Exit(1)
	}
	atexit.Register(func() {
		if cerr := db.Close(); cerr != nil {
			slog.Warn("closing snapshot database", "err", cerr)
		}
	})

	snaps := newSnapshotStore(db)
	if err := snaps.init(); err != nil {
		slog.Error("initializing snapshot schema", "err", err)
		atexit.Exit(1)
	}

	srv := &server{prog: prog, state: state, snaps: snaps}

	r := mux.NewRouter()
	r.HandleFunc("/inputs", srv.handleWriteInputs).Methods(http.MethodPost)
	r.HandleFunc("/step", srv.handleStep).Methods(http.MethodPost)
	r.HandleFunc("/outputs", srv.handleReadOutputs).Methods(http.MethodGet)
	r.HandleFunc("/dump", srv.handleDump).Methods(http.MethodGet)

	slog.Info("circuitsim listening", "addr", *addr, "program", prog.ID.String())

	if err := http.ListenAndServe(*addr, r); err != nil {
		slog.Error("http server exited", "err", err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

// server wires the compiled program's State to HTTP handlers. It holds no
// concurrency control of its own: the circuit core is single-threaded by
// design (spec §5), so this demo harness is meant for one client at a
// time.
type server struct {
	prog  *vm.Program
	state *vm.State
	snaps *snapshotStore
}

func (s *server) handleWriteInputs(w http.ResponseWriter, r *http.Request) {
	var body map[string]uint32
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	values := make(map[int]uint32, len(body))
	for k, v := range body {
		idx, err := strconv.Atoi(k)
		if err != nil {
			http.Error(w, fmt.Sprintf("bad input index %q", k), http.StatusBadRequest)
			return
		}
		values[idx] = v
	}

	s.state.WriteInputs(values)
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleStep(w http.ResponseWriter, r *http.Request) {
	remaining := s.state.Step()

	if err := s.snaps.record(s.prog.ID.String(), remaining); err != nil {
		slog.Warn("recording snapshot", "err", err)
	}

	json.NewEncoder(w).Encode(map[string]int{"dirty_remaining": remaining})
}

func (s *server) handleReadOutputs(w http.ResponseWriter, r *http.Request) {
	idxs := make([]int, len(s.prog.OutputMap))
	for i := range idxs {
		idxs[i] = i
	}

	out := s.state.ReadOutputs(idxs)

	resp := make(map[string]map[string]any, len(out))
	for idx, v := range out {
		resp[strconv.Itoa(idx)] = map[string]any{"kind": v.Kind.String(), "value": v.Value}
	}

	json.NewEncoder(w).Encode(resp)
}

func (s *server) handleDump(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintln(w, s.prog.Dump())
	fmt.Fprintln(w, s.state.DumpMemory())
}
