// Package doctor wires the pipeline end to end: scan, summarize, prompt,
// model call, parse, render. It is the only package that touches every
// stage, and it owns the degradation rules for the single model call.
package doctor

import (
	"context"
	"fmt"
	"log"

	"codedoctor/internal/analysis"
	"codedoctor/internal/arch"
	"codedoctor/internal/config"
	"codedoctor/internal/llmclient"
	"codedoctor/internal/prompt"
	"codedoctor/internal/report"
	"codedoctor/internal/safeio"
	"codedoctor/internal/scan"
)

// llmFailurePrefix marks a document produced without a usable model reply.
const llmFailurePrefix = "Error during AI analysis"

// Doctor runs analyses of one repository root against one model client.
type Doctor struct {
	fs  *safeio.RepoFS
	llm llmclient.Client
	cfg *config.Config
}

// New binds a repository root, a model client, and configuration. The root
// must exist and resolve inside itself (symlinked roots are resolved once).
func New(root string, cli llmclient.Client, cfg *config.Config) (*Doctor, error) {
	rfs, err := safeio.New(root)
	if err != nil {
		return nil, fmt.Errorf("doctor: opening repository: %w", err)
	}
	return &Doctor{fs: rfs, llm: cli, cfg: cfg}, nil
}

func (d *Doctor) scanOptions() scan.Options {
	return scan.Options{
		IgnoreDirs:      d.cfg.IgnoreDirs,
		MaxFilesPerType: d.cfg.MaxFilesPerType,
		MaxFileSize:     d.cfg.MaxFileSize,
		ContentLimit:    d.cfg.ContentLimit,
	}
}

func (d *Doctor) promptOptions() prompt.Options {
	return prompt.Options{
		TopDependencies: d.cfg.TopDependencies,
		TopPatterns:     d.cfg.TopPatterns,
	}
}

// Analyze runs the full pipeline and returns the rendered markdown document.
// A failed or empty model call does not fail the run: every section is
// filled with an error marker and the document is still produced, complete
// with the locally computed structure, statistics, and dependencies.
func (d *Doctor) Analyze(ctx context.Context) (string, error) {
	opts := d.scanOptions()

	log.Printf("doctor: scanning %s", d.fs.Root())
	res, err := scan.Sample(d.fs, opts)
	if err != nil {
		return "", fmt.Errorf("doctor: scanning repository: %w", err)
	}
	log.Printf("doctor: indexed %d files across %d types",
		res.Stats.TotalFiles, len(res.Stats.FilesByType))

	sum := arch.BuildSummary(d.fs, res, arch.FSDirLister{
		FS:         d.fs,
		IgnoreDirs: opts.IgnoreDirs,
	})

	p := prompt.BuildAnalysis(sum, d.promptOptions())

	log.Printf("doctor: requesting analysis from %s (%s)", d.llm.Name(), d.cfg.Model)
	sections := d.complete(ctx, p, d.cfg.AnalysisMaxTokens)

	return report.Render(sum, sections), nil
}

// complete makes the one model call for the analysis path and always returns
// a usable section map.
func (d *Doctor) complete(ctx context.Context, p string, maxTokens int) analysis.Sections {
	reply, err := d.llm.Complete(ctx, llmclient.Request{
		Model:     d.cfg.Model,
		MaxTokens: maxTokens,
		Messages:  []llmclient.Message{{Role: "user", Content: p}},
	})
	if err != nil {
		log.Printf("doctor: model call failed: %v", err)
		return analysis.ErrorSections(fmt.Sprintf("%s: %v", llmFailurePrefix, err))
	}
	return analysis.ParseSections(reply)
}

// Ask answers a question against a previously generated document. A missing
// or unreadable document is a hard error; a failed model call degrades to an
// error string returned as the answer.
func Ask(ctx context.Context, cli llmclient.Client, cfg *config.Config, docPath, question string) (string, error) {
	doc, err := report.Load(docPath)
	if err != nil {
		return "", err
	}

	p := prompt.BuildQuery(doc, question)
	reply, err := cli.Complete(ctx, llmclient.Request{
		Model:     cfg.Model,
		MaxTokens: cfg.QueryMaxTokens,
		Messages:  []llmclient.Message{{Role: "user", Content: p}},
	})
	if err != nil {
		log.Printf("doctor: query call failed: %v", err)
		return fmt.Sprintf("Error: %v", err), nil
	}
	return reply, nil
}
