package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"starfield/internal/core"
	"starfield/internal/field"
	_ "starfield/internal/formations/galaxy"
	_ "starfield/internal/formations/lattice"
	_ "starfield/internal/formations/scatter"
	_ "starfield/internal/formations/timeline"
	"starfield/internal/record"
)

func main() {
	var (
		dbPath = flag.String("db", "field.db", "sqlite database to write")
		scenes = flag.String("scenes", "/,/projects,/experience,/about,/contact", "comma separated scene tour")
		frames = flag.Int("frames", 240, "frames to run per scene")
		every  = flag.Int("every", 10, "record every n-th frame")
		width  = flag.Int("width", 1920, "viewport width")
		height = flag.Int("height", 1080, "viewport height")
		cores  = flag.Int("cores", 8, "reported CPU cores")
		seed   = flag.Int64("seed", 42, "seed for formation generation")
		count  = flag.Int("count", 0, "particle count override")
		list   = flag.Bool("list", false, "list recorded frames of -db and exit")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *list {
		if err := listFrames(ctx, *dbPath); err != nil {
			log.Fatal(err)
		}
		return
	}

	tour := strings.Split(*scenes, ",")
	if len(tour) == 0 || tour[0] == "" {
		log.Fatalf("no scenes given")
	}

	rec, err := record.Open(*dbPath, true)
	if err != nil {
		log.Fatal(err)
	}
	defer rec.Close()

	params := field.DefaultParams()
	params.Seed = *seed
	params.Count = *count
	vp := core.Viewport{W: *width, H: *height}
	e := field.New(core.Device{Width: *width, Cores: *cores}, vp, params)
	e.SetLogger(log.Default())
	e.OnSettled = func(scene string) { log.Printf("settled on %q after %d frames", scene, e.Frames()) }
	defer e.Close()

	e.Start(strings.TrimSpace(tour[0]))
	n, dt := 0, 1.0/60
	for i, scene := range tour {
		if i > 0 {
			e.SetScene(strings.TrimSpace(scene))
		}
		for f := 0; f < *frames; f++ {
			if ctx.Err() != nil {
				log.Printf("interrupted at frame %d", n)
				return
			}
			e.Frame(dt)
			n++
			if *every > 0 && n%*every != 0 {
				continue
			}
			if err := rec.Record(ctx, n, e.Scene(), e.Attrs()); err != nil {
				log.Fatalf("record: %v", err)
			}
		}
	}
	log.Printf("recorded %d frames of %d particles to %s", n/max(*every, 1), e.Count(), *dbPath)
}

func listFrames(ctx context.Context, path string) error {
	rec, err := record.Open(path, false)
	if err != nil {
		return err
	}
	defer rec.Close()
	frames, err := rec.Frames(ctx)
	if err != nil {
		return err
	}
	for _, n := range frames {
		f, err := rec.Frame(ctx, n)
		if err != nil {
			return err
		}
		fmt.Printf("%6d  %-12s %d particles\n", f.Number, f.Scene, f.Attrs.Count())
	}
	return nil
}
