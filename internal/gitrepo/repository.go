// Package gitrepo reads commits, trailers, and diffs from a Git repository
// using go-git.
package gitrepo

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/noxpardalis/gitch/internal/clierr"
)

// Repository wraps an opened Git repository.
type Repository struct {
	repo *git.Repository
	root string
}

// Open discovers the repository containing path, walking up parent
// directories the way the git binary does.
func Open(path string) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, clierr.FatalWrap(err,
				fmt.Sprintf("could not find a Git repository at %q", path),
				"the path and none of its parents contain a '.git' directory",
				"run gitch inside a Git repository or pass the repository path explicitly",
			)
		}
		return nil, fmt.Errorf("failed to open repository at %s: %w", path, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve repository worktree: %w", err)
	}

	root, err := filepath.Abs(worktree.Filesystem.Root())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve repository root: %w", err)
	}

	return &Repository{repo: repo, root: root}, nil
}

// Root returns the absolute path of the repository's working tree.
func (r *Repository) Root() string { return r.root }

// Window bounds a commit walk. All fields are optional; the zero value
// selects the full history reachable from HEAD.
type Window struct {
	// StartID is the oldest commit to include. The walk includes the
	// matching commit and then stops.
	StartID string
	// EndID is the newest commit to include; anything newer is skipped.
	EndID string
	// StartTime stops the walk once commits older than it are reached.
	StartTime *time.Time
	// EndTime skips commits newer than it.
	EndTime *time.Time
}

// Commits walks history from HEAD, newest first by committer time, applying
// the window bounds.
func (r *Repository) Commits(window Window) ([]Commit, error) {
	iter, err := r.log()
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var commits []Commit
	skipping := window.EndID != ""

	err = iter.ForEach(func(obj *object.Commit) error {
		if skipping {
			if obj.Hash.String() != window.EndID {
				return nil
			}
			skipping = false
		}
		if window.EndTime != nil && obj.Committer.When.After(*window.EndTime) {
			return nil
		}
		if window.StartTime != nil && obj.Committer.When.Before(*window.StartTime) {
			return storer.ErrStop
		}

		commits = append(commits, newCommit(obj))

		if window.StartID != "" && obj.Hash.String() == window.StartID {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk commits: %w", err)
	}

	return commits, nil
}

// FirstCommit returns the absolute first commit of the repository's history,
// independent of any window.
func (r *Repository) FirstCommit() (Commit, error) {
	iter, err := r.log()
	if err != nil {
		return Commit{}, err
	}
	defer iter.Close()

	var first *object.Commit
	err = iter.ForEach(func(obj *object.Commit) error {
		first = obj
		return nil
	})
	if err != nil {
		return Commit{}, fmt.Errorf("failed to walk commits: %w", err)
	}
	if first == nil {
		return Commit{}, errors.New("repository has no commits")
	}

	return newCommit(first), nil
}

func (r *Repository) log() (object.CommitIter, error) {
	head, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	iter, err := r.repo.Log(&git.LogOptions{
		From:  head.Hash(),
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start commit walk: %w", err)
	}
	return iter, nil
}
