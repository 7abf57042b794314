// internal/platform/ui/pterm_presenter.go
package ui

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pterm/pterm"
)

// PTermPresenter implementa Presenter usando la biblioteca pterm
// para renderizar secciones, una barra de progreso global y la tabla final.
type PTermPresenter struct {
	mu sync.Mutex

	// Tracking de progreso
	info         RunInfo
	runStartTime time.Time
	shown        int

	// Barra de progreso global, avanzada según Result.Progress
	bar *pterm.ProgressbarPrinter

	// Fallos por stage para el resumen del stage
	stageFailures map[string]int
}

// NewPTermPresenter crea una nueva instancia del presenter con pterm
func NewPTermPresenter() *PTermPresenter {
	return &PTermPresenter{
		stageFailures: make(map[string]int),
	}
}

// Start inicia la presentación mostrando el header de la ejecución
func (p *PTermPresenter) Start(info RunInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.info = info
	p.runStartTime = time.Now()
	p.shown = 0

	pterm.DefaultHeader.
		WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Println("publishx - Plugin Pipeline")

	pterm.Println()

	infoPanel := pterm.DefaultBox.
		WithTitle("Run").
		WithTitleTopCenter().
		WithRightPadding(4).
		WithLeftPadding(4).
		WithBoxStyle(pterm.NewStyle(pterm.FgYellow))

	content := fmt.Sprintf("   Run ID: %s\n", pterm.Gray(info.RunID))
	content += fmt.Sprintf("%s Targets: %s\n", IconTarget, pterm.Cyan(strings.Join(info.Targets, ", ")))
	content += fmt.Sprintf("%s Stages: %s\n", IconStage, strings.Join(info.Stages, " → "))
	content += fmt.Sprintf("%s Plugins: %d\n", IconPlugins, info.TotalPlugins)
	content += fmt.Sprintf("   Publish: %s", boolToString(info.Publish))

	infoPanel.Println(content)
	pterm.Println()

	if info.TotalPlugins > 0 {
		p.bar, _ = pterm.DefaultProgressbar.
			WithTotal(info.TotalPlugins).
			WithTitle("Publishing").
			WithRemoveWhenDone(true).
			Start()
	}
}

// StartStage notifica el inicio de un nuevo stage
func (p *PTermPresenter) StartStage(stage StageInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	title := fmt.Sprintf("%s Stage %d/%d: %s (%d plugins)",
		IconStage,
		stage.Number,
		stage.TotalStages,
		pterm.Cyan(StageTitle(stage.Name)),
		len(stage.Plugins),
	)
	pterm.DefaultSection.WithLevel(2).Println(title)

	if p.bar != nil {
		p.bar.UpdateTitle(StageTitle(stage.Name))
	}
}

// StartPlugin actualiza el título de la barra con el plugin actual
func (p *PTermPresenter) StartPlugin(stage StageInfo, plugin string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar != nil {
		p.bar.UpdateTitle(fmt.Sprintf("%s › %s", StageTitle(stage.Name), plugin))
	}
}

// FinishPlugin renderiza la línea del resultado y avanza la barra
func (p *PTermPresenter) FinishPlugin(plugin PluginInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if plugin.Status == StatusError {
		p.stageFailures[plugin.Stage]++
	}
	p.renderPluginLine(plugin)
	p.advance(plugin.Progress)
}

// SkipPlugin renderiza en gris un plugin que no produjo pares
func (p *PTermPresenter) SkipPlugin(stage StageInfo, plugin string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	StatusSkipped.Style().Println(fmt.Sprintf("  %s %s %s", StatusSkipped.Symbol(), plugin, pterm.Gray(StatusSkipped.String())))
}

// FinishStage notifica la finalización de un stage
func (p *PTermPresenter) FinishStage(stage StageInfo, duration time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if failures := p.stageFailures[stage.Name]; failures > 0 {
		pterm.Warning.Printf("%s completed in %s with %d failure(s)\n",
			StageTitle(stage.Name), formatDuration(duration), failures)
	} else {
		pterm.Info.Printf("%s completed in %s\n", StageTitle(stage.Name), formatDuration(duration))
	}
	pterm.Println(pterm.Gray(SeparatorLight))
}

// Info muestra un mensaje informativo
func (p *PTermPresenter) Info(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Info.Println(msg)
}

// Warning muestra una advertencia
func (p *PTermPresenter) Warning(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Warning.Println(msg)
}

// Error muestra un error
func (p *PTermPresenter) Error(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Error.Println(msg)
}

// Finish finaliza la presentación con estadísticas finales
func (p *PTermPresenter) Finish(stats RunStats) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopBar()

	pterm.Println()
	pterm.Println(pterm.LightYellow(SeparatorHeavy))
	pterm.Println()

	header := pterm.DefaultHeader.WithTextStyle(pterm.NewStyle(pterm.FgBlack))
	if stats.Failed > 0 {
		header.WithBackgroundStyle(pterm.NewStyle(pterm.BgRed)).Println("Publish Finished With Failures")
	} else {
		header.WithBackgroundStyle(pterm.NewStyle(pterm.BgGreen)).Println("Publish Completed")
	}
	pterm.Println()

	statsPanel := pterm.DefaultBox.
		WithTitle("Statistics").
		WithTitleTopCenter().
		WithRightPadding(4).
		WithLeftPadding(4).
		WithBoxStyle(pterm.NewStyle(pterm.FgGreen))

	content := fmt.Sprintf("%s Total Duration: %s\n", IconTime, pterm.Green(formatDuration(stats.TotalDuration)))
	content += fmt.Sprintf("%s Plugins: %s\n", IconPlugins, pterm.Cyan(fmt.Sprintf("%d", stats.Plugins)))
	content += fmt.Sprintf("%s Results Succeeded: %s", IconSuccess, pterm.Green(fmt.Sprintf("%d", stats.Succeeded)))
	if stats.Failed > 0 {
		content += fmt.Sprintf("\n%s Results Failed: %s", IconError, pterm.Red(fmt.Sprintf("%d", stats.Failed)))
	}
	if len(stats.Checkpoints) > 0 {
		content += fmt.Sprintf("\n   Checkpoints: %s", strings.Join(stats.Checkpoints, ", "))
	}
	statsPanel.Println(content)

	if len(stats.ResultsByStage) > 0 {
		pterm.Println()
		pterm.DefaultSection.WithLevel(2).Println(IconStats + " Results by Stage")

		stages := make([]string, 0, len(stats.ResultsByStage))
		for stage := range stats.ResultsByStage {
			stages = append(stages, stage)
		}
		sort.Strings(stages)

		tableData := pterm.TableData{{"Stage", "Results"}}
		for _, stage := range stages {
			tableData = append(tableData, []string{
				StageTitle(stage),
				fmt.Sprintf("%d", stats.ResultsByStage[stage]),
			})
		}

		_ = pterm.DefaultTable.
			WithHasHeader().
			WithBoxed().
			WithData(tableData).
			Render()
	}

	pterm.Println()
}

// Close limpia recursos del presenter
func (p *PTermPresenter) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopBar()
	return nil
}

// advance mueve la barra hasta progress*total; el progreso puede saltar
// varios plugins de golpe cuando un bucket termina antes de tiempo.
func (p *PTermPresenter) advance(progress float64) {
	if p.bar == nil {
		return
	}
	target := int(math.Round(progress * float64(p.info.TotalPlugins)))
	if delta := target - p.shown; delta > 0 {
		p.bar.Add(delta)
		p.shown = target
	}
}

func (p *PTermPresenter) stopBar() {
	if p.bar == nil {
		return
	}
	_, _ = p.bar.Stop()
	p.bar = nil
}

// renderPluginLine renderiza una línea con el resultado de un plugin
func (p *PTermPresenter) renderPluginLine(plugin PluginInfo) {
	name := plugin.Name
	if plugin.Instance != "" {
		name = fmt.Sprintf("%s [%s]", plugin.Name, plugin.Instance)
	}

	line := fmt.Sprintf("  %s %s", plugin.Status.Symbol(), name)
	if plugin.Duration > 0 {
		line += fmt.Sprintf(" (%s)", formatDuration(plugin.Duration))
	}
	line += " " + pterm.Gray(formatPercent(plugin.Progress))
	if plugin.Error != "" {
		line += " " + StyleError.Sprint(plugin.Error)
	}

	plugin.Status.Style().Println(line)
}
