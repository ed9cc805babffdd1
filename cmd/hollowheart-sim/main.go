// Package main runs a headless, seeded Hollowheart session in simulated time
// and prints a summary. Two runs with the same flags print the same result.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/PatrikSjolin/hollowheart/internal/domain/character"
	"github.com/PatrikSjolin/hollowheart/internal/domain/item"
	"github.com/PatrikSjolin/hollowheart/internal/domain/resource"
	"github.com/PatrikSjolin/hollowheart/internal/engine"
	"github.com/PatrikSjolin/hollowheart/internal/events"
	"github.com/PatrikSjolin/hollowheart/internal/platform/logger"
	"github.com/PatrikSjolin/hollowheart/internal/platform/metrics"
	"github.com/PatrikSjolin/hollowheart/internal/platform/random"
)

// simClock advances only when the runner says so.
type simClock struct{ now time.Time }

func (c *simClock) Now() time.Time { return c.now }

// autopilot is the scripted player: dive while healthy, retreat when hurt.
type autopilot struct {
	session *engine.Session
	retreat float64
}

func (a *autopilot) act(st engine.Status, snap character.Snapshot) {
	for snap.UnallocatedPoints > 0 {
		if !a.session.UpgradeStat(character.Vitality) {
			break
		}
		snap.UnallocatedPoints--
	}
	if snap.Equipment == nil {
		snap.Equipment = map[item.Slot]item.Item{}
	}
	for _, it := range snap.Inventory {
		if it.Kind != item.KindEquipment || !it.Slot.Valid() {
			continue
		}
		cur, worn := snap.Equipment[it.Slot]
		if !worn || power(it) > power(cur) {
			a.session.EquipItem(it.Slot, it.ID)
			snap.Equipment[it.Slot] = it
		}
	}

	hurt := float64(st.Health) < a.retreat*float64(st.MaxHealth)
	switch {
	case !st.Exploring && st.Health == st.MaxHealth:
		a.session.Descend()
	case st.Exploring && hurt:
		a.session.Ascend()
	case st.Exploring:
		a.session.Descend()
	}
}

func power(it item.Item) int {
	return it.Bonus.Attack + it.Bonus.Armor
}

func main() {
	seed := flag.Int64("seed", 1, "RNG seed")
	duration := flag.Duration("duration", 2*time.Hour, "Simulated time to run")
	step := flag.Duration("step", 100*time.Millisecond, "Simulated time per tick")
	decide := flag.Duration("decide", 5*time.Second, "Simulated time between autopilot decisions")
	retreat := flag.Float64("retreat", 0.3, "Health fraction below which the autopilot ascends")
	tail := flag.Int("tail", 15, "Narration lines to print at the end")
	verbose := flag.Bool("v", false, "Log engine events to stderr")
	flag.Parse()

	if *step <= 0 || *duration < *step {
		fmt.Fprintln(os.Stderr, "hollowheart-sim: need 0 < step <= duration")
		os.Exit(2)
	}

	log := logger.Discard()
	if *verbose {
		log = logger.New(os.Stderr, true)
	}
	m := metrics.New()
	eventLog := events.NewEventLog(nil, *tail)
	clock := &simClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	rng := random.New(*seed)

	char := character.New("Autopilot", character.Options{Narrator: eventLog, Notifier: eventLog})
	eng := engine.NewEngine(char, engine.DefaultConfig(), engine.Deps{
		RNG:    rng,
		Loot:   item.NewGenerator(rng),
		Clock:  clock,
		Logger: log,
	})
	session := engine.NewSession(eng)
	pilot := &autopilot{session: session, retreat: *retreat}

	ms := float64(*step) / float64(time.Millisecond)
	ticks := int(*duration / *step)
	perDecision := max(int(*decide / *step), 1)

	start := time.Now()
	var st engine.Status
	deaths := 0
	for i := range ticks {
		clock.now = clock.now.Add(*step)
		tickStart := time.Now()
		st = session.Tick(ms)
		m.RecordTick(time.Since(tickStart), ms)
		m.RecordDepth(st.Depth, st.RecordDepth)
		for ; deaths < st.Deaths; deaths++ {
			m.RecordDeath()
		}
		if i%perDecision == 0 {
			pilot.act(st, session.Snapshot())
		}
	}
	wall := time.Since(start)

	snap := session.Snapshot()
	printSummary(*seed, *duration, ticks, wall, st, snap)

	fmt.Println("\nLast narration:")
	for _, l := range eventLog.Since(0) {
		if l.Kind == events.KindModal {
			fmt.Printf("  [%s] %s\n", l.Title, l.Message)
			continue
		}
		fmt.Printf("  %s\n", l.Message)
	}
}

func printSummary(seed int64, duration time.Duration, ticks int, wall time.Duration, st engine.Status, snap character.Snapshot) {
	rule := strings.Repeat("=", 48)
	fmt.Println(rule)
	fmt.Println("HOLLOWHEART SIMULATION")
	fmt.Println(rule)
	fmt.Printf("Seed:            %d\n", seed)
	fmt.Printf("Simulated:       %s in %s ticks (%s wall)\n", duration, humanize.Comma(int64(ticks)), wall.Round(time.Millisecond))
	fmt.Printf("Depth:           %d (record %d)\n", st.Depth, st.RecordDepth)
	fmt.Printf("Level:           %d\n", st.Level)
	fmt.Printf("Health:          %d/%d\n", st.Health, st.MaxHealth)
	fmt.Printf("Deaths:          %d\n", st.Deaths)
	fmt.Printf("Inventory:       %d items\n", len(snap.Inventory))

	fmt.Println("Resources:")
	for _, k := range resource.All {
		if v := snap.Resources[k]; v > 0 {
			fmt.Printf("  %-14s %s\n", k.String()+":", humanize.Comma(int64(v)))
		}
	}
	fmt.Println(rule)
}
