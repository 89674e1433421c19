package snapshot

import (
	"context"
	"time"

	"github.com/petrarca/loctree/internal/config"
	"github.com/petrarca/loctree/internal/extract"
	"github.com/petrarca/loctree/internal/git"
	"github.com/petrarca/loctree/internal/graph"
	"github.com/petrarca/loctree/internal/model"
	"github.com/petrarca/loctree/internal/pool"
	"github.com/petrarca/loctree/internal/progress"
	"github.com/petrarca/loctree/internal/provider"
	"github.com/petrarca/loctree/internal/resolve"
	"github.com/petrarca/loctree/internal/spec"
	"github.com/petrarca/loctree/internal/stackdetect"
	"github.com/petrarca/loctree/internal/walk"
)

// Scan produces a Snapshot for root, implementing spec.md §4.6's
// rescan algorithm: (1) compute the git identity; (2) if a snapshot
// already exists for that identity and the worktree is clean, reuse it
// outright; (3) otherwise walk the tree, reusing each file's previous
// FileAnalysis when its mtime hasn't moved (unless forced); (4)
// resolve imports, build the graph, and persist the result. Grounded
// on the teacher's Scanner.Scan (internal/scanner/scanner.go): fetch
// git identity once up front, recurse the tree, then post-process
// cross-file references — the same three-step shape.
func Scan(root string, settings *config.Settings, prog *progress.Progress) (*model.Snapshot, bool, error) {
	if prog == nil {
		prog = progress.New(false, nil)
	}

	id := git.Identity{}
	if !settings.FullScan {
		id = git.GetIdentity(root, true)
	}
	gitID := model.GitIdentity{Branch: id.Branch, Commit: id.Commit, Dirty: id.Dirty}

	store := NewStore(root, settings.CacheDir)

	if !settings.ForceRescan && !id.Dirty && gitID.Branch != "" {
		if prior, err := store.Load(gitID); err == nil {
			return prior, false, nil
		}
	}

	var prior *model.Snapshot
	if !settings.ForceRescan && !settings.FullScan {
		prior, _ = store.Load(gitID)
	}
	priorFiles := map[string]*model.FileAnalysis{}
	if prior != nil {
		priorFiles = prior.FileIndex()
	}

	cfg := stackdetect.Detect(root, settings.Ignore)
	p := provider.NewFSProvider(root)
	w := walk.New(p, cfg.Extensions, cfg.DefaultIgnores, prog)

	// C2 (walk) stays single-threaded, per spec.md §5: it only feeds
	// a work queue. mtime-reuse is cheap enough to decide inline; the
	// CPU-bound per-language extraction (C3) is deferred to a bounded
	// worker pool below so extraction, not directory traversal, is
	// what actually fans out across hardware threads.
	var reused []*model.FileAnalysis
	var pending []walk.File
	err := w.Walk(func(f walk.File) error {
		if prior, ok := priorFiles[f.Path]; ok && prior.ModTime == f.ModTime {
			reused = append(reused, prior)
			return nil
		}
		pending = append(pending, f)
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	extracted := make([]*model.FileAnalysis, len(pending))
	errs := pool.Run(context.Background(), len(pending), settings.Workers, func(_ context.Context, i int) error {
		f := pending[i]
		fa := extract.File(f.Path, f.Content)
		if fa == nil {
			return nil
		}
		fa.ModTime = f.ModTime
		extracted[i] = fa
		return nil
	})

	files := reused
	for i, fa := range extracted {
		if fa == nil {
			if err := errs[i]; err != nil {
				fa = &model.FileAnalysis{Path: pending[i].Path, ModTime: pending[i].ModTime, ParseFailed: true, ParseError: err.Error()}
				files = append(files, fa)
			}
			continue
		}
		files = append(files, fa)
	}

	r := resolve.New(p, root, files, nil, prog)
	r.ResolveAll(files)

	built := graph.Build(files)

	model.SortFiles(files)

	snap := &model.Snapshot{
		Schema:         spec.Schema,
		SchemaVersion:  spec.SchemaVersion,
		GeneratedAt:    time.Now().UTC().Format(time.RFC3339),
		Root:           root,
		Git:            gitID,
		Languages:      cfg.Languages,
		Files:          files,
		Edges:          built.Edges,
		ExportIndex:    built.ExportIndex,
		SymbolIndex:    built.SymbolIndex,
		CommandBridges: built.CommandBridges,
		EventBridges:   built.EventBridges,
	}

	wrote, err := store.Save(snap, settings.PrettyPrint)
	if err != nil {
		return nil, false, err
	}
	if !wrote {
		prog.Info("snapshot unchanged, not rewritten: " + store.path(gitID))
	}

	return snap, true, nil
}
