package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/starblitz/balance-backend/internal/auth"
	"github.com/starblitz/balance-backend/internal/balance"
	"github.com/starblitz/balance-backend/internal/config"
	"github.com/starblitz/balance-backend/internal/live"
	"github.com/starblitz/balance-backend/internal/settings"
	"github.com/starblitz/balance-backend/internal/shop"
)

type multipliersResp struct {
	Damage  float64 `json:"damage"`
	DPS     float64 `json:"dps"`
	Defense float64 `json:"defense"`
}

type validateResp struct {
	Valid  bool                     `json:"valid"`
	Detail balance.ValidationResult `json:"detail"`
}

type canAddResp struct {
	Allowed bool `json:"allowed"`
}

type summaryResp struct {
	Summary string          `json:"summary"`
	Metrics balance.Metrics `json:"metrics"`
}

// server bundles the shared pieces: the active evaluator (swapped on
// reload), the run settings repository, the live feed and admin auth.
type server struct {
	loader *config.Loader
	mode   string

	mu sync.RWMutex
	ev *balance.Evaluator

	repoMu sync.Mutex
	repo   *settings.Repository

	hub *live.Hub
}

func (s *server) evaluator() *balance.Evaluator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ev
}

// reload re-resolves the table files and swaps the evaluator in.
func (s *server) reload() error {
	s.loader.Invalidate()
	raw, cfg, err := s.loader.Resolve(s.mode, "", config.Overrides{})
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.ev = balance.NewEvaluator(cfg)
	s.mu.Unlock()
	s.hub.Send("config_reloaded", map[string]string{"version": raw.Version, "mode": s.mode})
	return nil
}

func parseFloat(r *http.Request, key string) (float64, bool, string) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, false, ""
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return f, true, ""
}

func parseInt(r *http.Request, key string) (int, bool, string) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, false, ""
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return n, true, ""
}

// parseBuild reads "id:count,id:count" from the build query param.
func parseBuild(r *http.Request) (balance.Build, string) {
	raw := r.URL.Query().Get("build")
	b := make(balance.Build)
	if raw == "" {
		return b, ""
	}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, countStr, ok := strings.Cut(part, ":")
		if !ok {
			return nil, "invalid build entry: " + part
		}
		n, err := strconv.Atoi(countStr)
		if err != nil || n < 0 {
			return nil, "invalid stack count in: " + part
		}
		b[balance.UpgradeID(strings.TrimSpace(id))] += n
	}
	return b, ""
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *server) handleMultipliers(w http.ResponseWriter, r *http.Request) {
	b, msg := parseBuild(r)
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	ev := s.evaluator()
	writeJSON(w, multipliersResp{
		Damage:  ev.MaxDamageMultiplier(b),
		DPS:     ev.MaxDPSMultiplier(b),
		Defense: ev.MaxDefenseMultiplier(b),
	})
}

func (s *server) handleValidate(w http.ResponseWriter, r *http.Request) {
	b, msg := parseBuild(r)
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	detail := s.evaluator().ValidateCombinationDetailed(b)
	writeJSON(w, validateResp{Valid: detail.Valid, Detail: detail})
}

func (s *server) handleCanAdd(w http.ResponseWriter, r *http.Request) {
	b, msg := parseBuild(r)
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "missing param id", http.StatusBadRequest)
		return
	}
	n, ok, msg := parseInt(r, "n")
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	if !ok {
		n = 1
	}
	allowed := s.evaluator().CanSafelyAddUpgrade(b, balance.UpgradeID(id), n)
	writeJSON(w, canAddResp{Allowed: allowed})
}

func (s *server) handleSummary(w http.ResponseWriter, r *http.Request) {
	b, msg := parseBuild(r)
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	ev := s.evaluator()
	resp := summaryResp{
		Summary: ev.PowerSummary(b),
		Metrics: balance.Metrics{
			MaxDamage:       ev.MaxDamageMultiplier(b),
			MaxDPS:          ev.MaxDPSMultiplier(b),
			DamageReduction: ev.MaxDefenseMultiplier(b),
		},
	}
	writeJSON(w, resp)
	s.hub.Send("power_summary", resp)
}

func (s *server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	trials, ok, msg := parseInt(r, "trials")
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	if !ok || trials <= 0 {
		trials = 1000
	}
	if trials > 100000 {
		trials = 100000
	}
	maxPicks, _, msg := parseInt(r, "max_picks")
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	params := balance.SimParams{MaxPicks: maxPicks}
	if seed, ok, _ := parseInt(r, "seed"); ok {
		params.RNG = balance.NewSeededRNG(uint64(seed))
	}
	writeJSON(w, s.evaluator().RunBuildSim(params, trials))
}

func (s *server) handleShopPlan(w http.ResponseWriter, r *http.Request) {
	ev := s.evaluator()
	cat := shop.DefaultCatalog()
	budget, hasBudget, msg := parseInt(r, "budget")
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	if hasBudget {
		writeJSON(w, shop.MaxPowerUnderBudget(ev, cat, budget))
		return
	}
	target, hasTarget, msg := parseFloat(r, "target_damage")
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	if !hasTarget {
		http.Error(w, "missing param budget or target_damage", http.StatusBadRequest)
		return
	}
	writeJSON(w, shop.MinCostForDamage(ev, cat, target))
}

func (s *server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	s.repoMu.Lock()
	snap := s.repo.Snapshot()
	s.repoMu.Unlock()
	writeJSON(w, snap)
}

func (s *server) handleRestore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var snap settings.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	s.repoMu.Lock()
	s.repo.Restore(snap)
	s.repoMu.Unlock()
	s.hub.Send("snapshot_restored", map[string]int{"effects": len(snap.Effects)})
	writeJSON(w, map[string]bool{"ok": true})
}

func (s *server) handleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	if err := s.reload(); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, map[string]bool{"ok": true})
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	configDir := flag.String("config", "config", "balance table directory")
	dataDir := flag.String("data", "data", "data directory (signing key)")
	mode := flag.String("mode", "", "game mode overlay, e.g. hardcore")
	flag.Parse()

	loader := config.NewLoader(*configDir)
	raw, cfg, err := loader.Resolve(*mode, "", config.Overrides{})
	if err != nil {
		log.Fatalf("resolve balance tables: %v", err)
	}
	log.Printf("balance tables loaded (version %q, mode %q)", raw.Version, *mode)

	au, err := auth.New(*dataDir)
	if err != nil {
		log.Fatalf("auth init: %v", err)
	}
	adminToken, err := au.IssueAdminToken(24 * time.Hour)
	if err != nil {
		log.Fatalf("mint admin token: %v", err)
	}
	log.Printf("admin token (24h): %s", adminToken)

	hub := live.NewHub()
	go hub.Run()

	srv := &server{
		loader: loader,
		mode:   *mode,
		ev:     balance.NewEvaluator(cfg),
		repo:   settings.NewRepository(),
		hub:    hub,
	}

	// hot reload on table edits
	paths := loader.Paths()
	watched := []string{paths.DefaultPath()}
	if *mode != "" {
		watched = append(watched, paths.ModePath(*mode))
	}
	watcher := config.NewFileWatcher(watched, 2*time.Second, func(p string) {
		log.Printf("table changed: %s", p)
		if err := srv.reload(); err != nil {
			log.Printf("reload failed, keeping previous tables: %v", err)
		}
	})
	watcher.Start()
	defer watcher.Stop()

	http.HandleFunc("/multipliers", srv.handleMultipliers)
	http.HandleFunc("/validate", srv.handleValidate)
	http.HandleFunc("/can_add", srv.handleCanAdd)
	http.HandleFunc("/summary", srv.handleSummary)
	http.HandleFunc("/simulate", srv.handleSimulate)
	http.HandleFunc("/shop/plan", srv.handleShopPlan)
	http.HandleFunc("/settings/snapshot", srv.handleSnapshot)
	http.HandleFunc("/admin/settings/restore", au.Middleware(srv.handleRestore))
	http.HandleFunc("/admin/reload", au.Middleware(srv.handleReload))
	http.HandleFunc("/live", func(w http.ResponseWriter, r *http.Request) {
		live.ServeWs(hub, w, r)
	})

	log.Printf("listening on %s ...", *addr)
	log.Fatal(http.ListenAndServe(*addr, nil))
}
