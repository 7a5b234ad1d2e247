package main

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/phanxgames/liquidglass/timeline"
)

// runSpring plots the closed-form unit step response next to the live-mode
// integrator stepped toward 1, so a curve can be judged before committing it
// to a document.
func runSpring(cmd *cobra.Command, args []string) error {
	c := timeline.SpringConfig{Stiffness: stiffness, Damping: damping, Mass: mass}
	if err := c.Validate(); err != nil {
		return err
	}
	if frames < 2 {
		frames = 2
	}

	closed := make([]float64, frames)
	stepped := make([]float64, frames)
	in, err := timeline.NewIntegrator(c, fps)
	if err != nil {
		return err
	}
	for f := 0; f < frames; f++ {
		closed[f] = timeline.Progress(c, float64(f), fps)
		stepped[f] = in.Pos
		in.Step(1)
	}

	graph := asciigraph.PlotMany([][]float64{closed, stepped},
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("step response k=%g c=%g m=%g at %d fps (closed form vs stepped)",
			c.Stiffness, c.Damping, c.Mass, fps)),
	)
	fmt.Println(graph)

	settle := -1
	for f := 0; f < frames; f++ {
		if abs(closed[f]-1) < 0.01 {
			settle = f
			break
		}
	}
	if settle >= 0 {
		fmt.Printf("reaches 99%% at frame %d (%.2fs)\n", settle, float64(settle)/float64(fps))
	} else {
		fmt.Printf("does not reach 99%% within %d frames\n", frames)
	}
	return nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
