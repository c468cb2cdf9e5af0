package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/ivlev/shotmaster/internal/config"
	"github.com/ivlev/shotmaster/internal/render"
	"github.com/ivlev/shotmaster/internal/stats"
	"github.com/ivlev/shotmaster/internal/store"
	"github.com/ivlev/shotmaster/internal/system"
)

func main() {
	projectPtr := flag.String("project", "", "Path to a project file (default: latest .yaml in projects/)")
	initPtr := flag.Bool("init", false, "Write a starter project file and exit")
	cameraPtr := flag.String("camera", "", "Render a single camera by name")
	groupPtr := flag.String("group", "", "Render all cameras in a group")
	allPtr := flag.Bool("all", false, "Render all cameras")
	animationPtr := flag.Bool("animation", false, "Render the frame range instead of a still")
	previewPtr := flag.Bool("preview", false, "Preview render (no files written)")
	statsPtr := flag.Bool("stats", false, "Print project statistics")
	slatePtr := flag.Bool("slate", true, "Stamp a QR shot tag into rendered frames")

	flag.Parse()

	os.MkdirAll("projects", 0755)

	projectPath := *projectPtr
	if projectPath == "" {
		latest, err := system.FindLatestProject("projects")
		if err == nil {
			projectPath = latest
		} else if !*initPtr {
			log.Fatalf("[-] %v. Pass -project or run -init first", err)
		}
	}

	if *initPtr {
		if projectPath == "" {
			projectPath = "projects/shotmaster.yaml"
		}
		if err := writeStarterProject(projectPath); err != nil {
			log.Fatalf("[-] init failed: %v", err)
		}
		fmt.Printf("[+++] Starter project written: %s\n", projectPath)
		return
	}

	st, err := store.Load(projectPath)
	if err != nil {
		log.Fatalf("[-] cannot load project: %v", err)
	}
	fmt.Printf("[*] Project: %s | Cameras: %d | Groups: %d\n",
		projectPath, len(st.Cameras()), len(st.Groups()))

	if *statsPtr {
		printStats(st)
	}

	if *cameraPtr == "" && *groupPtr == "" && !*allPtr {
		if !*statsPtr {
			flag.Usage()
		}
		return
	}

	master := st.Master()
	env := render.NewMemoryEnvironment(render.EnvState{
		Engine:     master.Engine,
		Width:      master.Width,
		Height:     master.Height,
		Percentage: master.Percentage,
		Samples: map[string]int{
			config.EngineCycles: master.CyclesSamples,
			config.EngineEevee:  master.EeveeSamples,
		},
		FileFormat: config.FormatPNG,
		FrameStart: master.FrameStart,
		FrameEnd:   master.FrameEnd,
	}, st.Layers())

	engine := &render.SoftwareEngine{Slate: *slatePtr}
	orch := render.NewOrchestrator(st, env, engine)
	orch.FallbackDir = master.OutputPath

	ctx := context.Background()

	switch {
	case *cameraPtr != "":
		report, err := orch.Render(ctx, *cameraPtr, *animationPtr, *previewPtr)
		if err != nil {
			log.Fatalf("[-] %v", err)
		}
		printReport(report)
	case *groupPtr != "":
		batch, err := orch.RenderGroup(ctx, *groupPtr, *animationPtr, *previewPtr)
		if err != nil {
			log.Fatalf("[-] %v", err)
		}
		printBatch(batch)
	default:
		batch, err := orch.RenderAll(ctx, *animationPtr, *previewPtr)
		if err != nil {
			log.Fatalf("[-] %v", err)
		}
		printBatch(batch)
	}

	// Persist the updated render counters.
	if err := st.Save(projectPath); err != nil {
		log.Printf("[!] cannot save project: %v", err)
	}
}

func writeStarterProject(path string) error {
	st := store.New(store.DefaultMaster())
	st.SetLayers([]string{"main"})

	ext := config.Group{Name: "Ext"}
	ext.UseRenderSettings = true
	ext.Engine = config.EngineEevee
	ext.EeveeSamples = 64
	if err := st.AddGroup(ext); err != nil {
		return err
	}

	shotA := store.DefaultCamera("Shot A")
	shotA.Group = "Ext"
	if err := st.AddCamera(shotA); err != nil {
		return err
	}
	if err := st.AddCamera(store.DefaultCamera("Shot B")); err != nil {
		return err
	}

	return st.Save(path)
}

func printReport(r render.Report) {
	fmt.Printf("[>] %s: %s in %.2fs\n", r.Camera, r.Outcome, r.Duration.Seconds())
	for _, p := range r.Passes {
		name := p.Pass
		if name == "" {
			name = "(default)"
		}
		if p.Err != nil {
			fmt.Printf("    [!] pass %s failed: %v\n", name, p.Err)
		} else if p.OutputDir != "" {
			fmt.Printf("    [+] pass %s -> %s\n", name, p.OutputDir)
		} else {
			fmt.Printf("    [+] pass %s (preview)\n", name)
		}
	}
	if r.Degraded {
		fmt.Println("    [!] resolution degraded (missing group or layer)")
	}
	if r.RestoreErr != nil {
		fmt.Printf("    [!] environment restore failed: %v\n", r.RestoreErr)
	}
}

func printBatch(b render.BatchReport) {
	for _, r := range b.Reports {
		printReport(r)
	}
	fmt.Printf("[+++] Rendered %d of %d cameras (%d partial, %d failed)\n",
		b.Succeeded, len(b.Reports), b.Partial, b.Failed)
}

func printStats(st *store.Store) {
	s := stats.Aggregate(st)

	fmt.Println("--- [PROJECT STATISTICS] ---")
	fmt.Printf("Host: %s\n", system.HostSummary())
	fmt.Printf("Cameras: %d | Groups: %d | Total frames: %d\n",
		s.TotalCameras, s.TotalGroups, s.TotalFrames)
	printCounts("By group", s.CamerasByGroup)
	printCounts("By engine", s.Engines)
	printCounts("Shot sizes", s.ShotSizes)
	printCounts("Shot types", s.ShotTypes)
	printCounts("Equipment", s.Equipment)
	fmt.Printf("Renders: %d | Last: %.2fs | Total: %.2fs | Average: %.2fs\n",
		s.TotalRenders, s.LastRenderSeconds, s.TotalRenderSeconds, s.AverageRenderSeconds)
	fmt.Println("----------------------------")
}

// printCounts shows only the non-zero rows, sorted by key.
func printCounts(label string, counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k, n := range counts {
		if n > 0 {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return
	}
	sort.Strings(keys)
	fmt.Printf("%s:", label)
	for _, k := range keys {
		fmt.Printf(" %s=%d", k, counts[k])
	}
	fmt.Println()
}
