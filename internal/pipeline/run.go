package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/briefpress/internal/compose"
	"github.com/dgallion1/briefpress/internal/extract"
	"github.com/dgallion1/briefpress/internal/notion"
	"github.com/dgallion1/briefpress/internal/polish"
	"github.com/dgallion1/briefpress/internal/section"
)

// Store is the document-store surface the pipeline depends on. The production
// implementation is notion.Client; tests substitute in-memory fakes.
type Store interface {
	// Children returns the complete ordered child list of a block.
	Children(ctx context.Context, blockID string) ([]*notion.Block, error)
	// CreatePage creates a page with the first batch of blocks.
	CreatePage(ctx context.Context, parentID, title string, blocks []notion.Block) (string, error)
	// AppendBlocks appends one further batch; batches must arrive in order.
	AppendBlocks(ctx context.Context, pageID string, blocks []notion.Block) error
}

// Runner executes one reformatting run end to end:
// fetch, extract, classify, reassemble, serialize, write.
type Runner struct {
	store    Store
	polisher polish.Polisher
	tax      *section.Taxonomy
	limits   compose.Limits
	timeout  time.Duration
	log      *slog.Logger
}

func NewRunner(store Store, polisher polish.Polisher, tax *section.Taxonomy, limits compose.Limits, timeout time.Duration, log *slog.Logger) *Runner {
	if polisher == nil {
		polisher = polish.Noop{}
	}
	if tax == nil {
		tax = section.Default()
	}
	return &Runner{
		store:    store,
		polisher: polisher,
		tax:      tax,
		limits:   limits,
		timeout:  timeout,
		log:      log,
	}
}

// Request identifies one source page to reformat.
type Request struct {
	SourceID    string
	CompanyName string
	Title       string
	ParentID    string
}

// Result summarizes a completed run.
type Result struct {
	PageID       string
	SectionCount int
	BlockCount   int
	BatchCount   int
	BytesWritten int
}

// Run fetches the source tree from the store and reformats it into a new
// page. A failed run leaves no resumable state; callers re-invoke from the
// fetch stage.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	ctx, cancel := r.withDeadline(ctx)
	defer cancel()

	tree, err := r.fetchTree(ctx, req.SourceID)
	if err != nil {
		return nil, &ReadError{Err: err}
	}
	return r.format(ctx, tree, req)
}

// RunTree reformats an already assembled block tree. The upload path uses
// this after parsing a local document into the same tree shape.
func (r *Runner) RunTree(ctx context.Context, tree []*notion.Block, req Request) (*Result, error) {
	ctx, cancel := r.withDeadline(ctx)
	defer cancel()
	return r.format(ctx, tree, req)
}

func (r *Runner) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *Runner) format(ctx context.Context, tree []*notion.Block, req Request) (*Result, error) {
	log := r.log.With("source_id", req.SourceID)

	lines := extract.Lines(tree)
	cls := section.NewClassifier(r.tax)
	for _, line := range lines {
		if text := extract.Normalize(line.Text); text != "" {
			cls.Feed(text)
		}
	}

	doc := section.Reassemble(cls.Buckets(), r.tax)
	if len(doc.Sections) == 0 {
		return nil, ErrEmptySource
	}
	log.Info("classified source", "lines", len(lines), "sections", len(doc.Sections))

	doc = r.polishSections(ctx, doc, req.CompanyName)

	blocks := compose.Blocks(doc, r.limits)
	batches := compose.Batches(blocks, r.limits.BatchSize)

	title := req.Title
	if title == "" {
		title = pageTitle(req.CompanyName)
	}

	var pageID string
	err := withRetry(ctx, log, "create_page", func() error {
		var createErr error
		pageID, createErr = r.store.CreatePage(ctx, req.ParentID, title, batches[0])
		return createErr
	})
	if err != nil {
		return nil, &WriteError{Err: err}
	}

	for i, batch := range batches[1:] {
		err := withRetry(ctx, log, "append_blocks", func() error {
			return r.store.AppendBlocks(ctx, pageID, batch)
		})
		if err != nil {
			return nil, &WriteError{Err: fmt.Errorf("batch %d/%d: %w", i+2, len(batches), err)}
		}
	}

	res := &Result{
		PageID:       pageID,
		SectionCount: len(doc.Sections),
		BlockCount:   len(blocks),
		BatchCount:   len(batches),
		BytesWritten: compose.TextLength(blocks),
	}
	log.Info("run complete",
		"page_id", res.PageID,
		"sections", res.SectionCount,
		"blocks", res.BlockCount,
		"batches", res.BatchCount,
	)
	return res, nil
}

// polishSections runs the optional narrative polish over each section body.
// A polish failure downgrades to the raw text; it never fails the run.
func (r *Runner) polishSections(ctx context.Context, doc section.Document, companyName string) section.Document {
	for i, s := range doc.Sections {
		polished, err := r.polisher.Polish(ctx, s.Text, companyName)
		if err != nil {
			r.log.Warn("polish failed, keeping raw text", "section", s.Key.Title, "error", err)
			continue
		}
		doc.Sections[i].Text = polished
	}
	return doc
}

// fetchTree assembles the source subtree: the full child list of each node is
// fetched page by page, then each child owning children is descended into.
// Construction order preserves pre-order document order.
func (r *Runner) fetchTree(ctx context.Context, rootID string) ([]*notion.Block, error) {
	var children []*notion.Block
	err := withRetry(ctx, r.log, "list_children", func() error {
		var listErr error
		children, listErr = r.store.Children(ctx, rootID)
		return listErr
	})
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		if !child.HasChildren {
			continue
		}
		sub, err := r.fetchTree(ctx, child.ID)
		if err != nil {
			return nil, err
		}
		child.Children = sub
	}
	return children, nil
}

func pageTitle(companyName string) string {
	if companyName == "" {
		return "Formatted Brief"
	}
	return companyName + " - Formatted Brief"
}
