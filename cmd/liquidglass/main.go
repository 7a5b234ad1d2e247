package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/liquidglass"
	"github.com/phanxgames/liquidglass/timeline"
)

var (
	settingsFile string
	background   string
	width        int
	height       int
	tps          int
	shapes       int
	baseW        float64
	baseH        float64
	// Render flags
	outDir    string
	component string
	// Spring flags
	stiffness float64
	damping   float64
	mass      float64
	fps       int
	frames    int
	// Inspect flags
	registryFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "liquidglass",
		Short: "liquid glass panel renderer",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to live mode when no command given
			return runLive(cmd, args)
		},
	}
	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "settings file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&background, "background", "", "backdrop image (png or jpeg)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive session: the panel follows the pointer, click toggles expansion",
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&width, "width", 960, "window width")
	liveCmd.Flags().IntVar(&height, "height", 600, "window height")
	liveCmd.Flags().IntVar(&tps, "tps", 60, "simulation tick rate")
	liveCmd.Flags().IntVar(&shapes, "shapes", 1, "shape count (>1 enables orbital layout)")
	liveCmd.Flags().Float64Var(&baseW, "base-w", 360, "resting panel width")
	liveCmd.Flags().Float64Var(&baseH, "base-h", 220, "resting panel height")

	renderCmd := &cobra.Command{
		Use:   "render [timeline.json]",
		Short: "render a timeline document to a PNG frame sequence",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	}
	renderCmd.Flags().StringVar(&outDir, "out", "frames", "output directory")
	renderCmd.Flags().StringVar(&component, "component", "panel", "component id to animate")
	renderCmd.Flags().IntVar(&width, "width", 1280, "fallback width when the document declares no canvas")
	renderCmd.Flags().IntVar(&height, "height", 720, "fallback height when the document declares no canvas")
	renderCmd.Flags().Float64Var(&baseW, "base-w", 360, "resting panel width")
	renderCmd.Flags().Float64Var(&baseH, "base-h", 220, "resting panel height")

	springCmd := &cobra.Command{
		Use:   "spring",
		Short: "plot a spring's unit step response in the terminal",
		RunE:  runSpring,
	}
	springCmd.Flags().Float64Var(&stiffness, "stiffness", 170, "spring stiffness")
	springCmd.Flags().Float64Var(&damping, "damping", 26, "spring damping")
	springCmd.Flags().Float64Var(&mass, "mass", 1, "spring mass")
	springCmd.Flags().IntVar(&fps, "fps", 60, "frame rate")
	springCmd.Flags().IntVar(&frames, "frames", 180, "frames to plot")

	inspectCmd := &cobra.Command{
		Use:   "inspect [timeline.json]",
		Short: "browse a timeline document and scrub its resolved states",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	inspectCmd.Flags().StringVar(&registryFile, "registry", "", "action registry file (json)")

	validateCmd := &cobra.Command{
		Use:   "validate [timeline.json]",
		Short: "validate a timeline document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := timeline.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s: ok (%d events, %d frames at %d fps)\n",
				args[0], len(doc.Events), doc.DurationFrames, doc.FPS)
			return nil
		},
	}

	rootCmd.AddCommand(liveCmd, renderCmd, springCmd, inspectCmd, validateCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(settingsFile)
	if err != nil {
		return err
	}
	glass := settings.glassParams()

	cfg := liquidglass.SessionConfig{
		Width:          width,
		Height:         height,
		BackgroundPath: background,
		Glass:          &glass,
		Spring:         settings.Spring.config(),
		ShapeCount:     shapes,
		BaseW:          baseW,
		BaseH:          baseH,
		TPS:            tps,
	}
	if background == "" {
		cfg.BackgroundPath = settings.Background
	}
	s, err := liquidglass.NewSession(cfg)
	if err != nil {
		return err
	}
	return s.Run("liquidglass")
}

func runRender(cmd *cobra.Command, args []string) error {
	doc, err := timeline.Load(args[0])
	if err != nil {
		return err
	}
	settings, err := loadSettings(settingsFile)
	if err != nil {
		return err
	}
	glass := settings.glassParams()

	cfg := liquidglass.RenderConfig{
		Doc:            doc,
		OutDir:         outDir,
		ComponentID:    component,
		BackgroundPath: background,
		Glass:          &glass,
		BaseW:          baseW,
		BaseH:          baseH,
		Width:          width,
		Height:         height,
	}
	if background == "" {
		cfg.BackgroundPath = settings.Background
	}
	r, err := liquidglass.NewRenderer(cfg)
	if err != nil {
		return err
	}
	if err := r.Run(); err != nil {
		return err
	}
	fmt.Printf("rendered %d frames to %s\n", r.Frames(), outDir)
	return nil
}
