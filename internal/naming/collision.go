package naming

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-git/go-billy/v5"

	"github.com/backmassage/fltools/internal/config"
	"github.com/backmassage/fltools/internal/fsys"
)

// Action is the outcome of resolving a target path.
type Action int

const (
	ActionMove      Action = iota // Target is free (or suffixed); move to it.
	ActionSkip                    // Target taken and policy is skip.
	ActionOverwrite               // Target taken and policy is overwrite.
)

func (a Action) String() string {
	switch a {
	case ActionSkip:
		return "skip"
	case ActionOverwrite:
		return "overwrite"
	default:
		return "move"
	}
}

// CollisionResolver decides where each source lands when its requested
// target is already taken, either on disk or by an earlier source in the
// same run. Suffixed names take the form "<stem> - dupN<ext>". All methods
// are goroutine-safe.
type CollisionResolver struct {
	mu       sync.Mutex
	fs       billy.Filesystem
	policy   config.CollisionPolicy
	op       string
	owners   map[string]string // target path → source path that owns it
	counters map[string]int    // requested target → next dup counter
}

// NewCollisionResolver creates a resolver applying policy to targets on fs.
// op names the operation in collision errors ("organize", "rename").
func NewCollisionResolver(fs billy.Filesystem, policy config.CollisionPolicy, op string) *CollisionResolver {
	return &CollisionResolver{
		fs:       fs,
		policy:   policy,
		op:       op,
		owners:   make(map[string]string),
		counters: make(map[string]int),
	}
}

// Reserve marks path as owned by itself, so that any other source asking
// for it collides even if path is moved away later in the run.
func (cr *CollisionResolver) Reserve(path string) {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	cr.owners[path] = path
}

// Resolve returns the final target for source. Under the fail policy a
// taken target yields a Collision error. A target that is an existing
// directory always collides unless the policy is skip or suffix.
func (cr *CollisionResolver) Resolve(source, requested string) (string, Action, error) {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	taken, isDir, err := cr.taken(source, requested)
	if err != nil {
		return "", ActionSkip, err
	}
	if !taken {
		cr.owners[requested] = source
		return requested, ActionMove, nil
	}

	switch cr.policy {
	case config.CollisionSkip:
		return requested, ActionSkip, nil
	case config.CollisionOverwrite:
		if isDir {
			return "", ActionSkip, fsys.Collision(cr.op, source, requested)
		}
		cr.owners[requested] = source
		return requested, ActionOverwrite, nil
	case config.CollisionSuffix:
		return cr.suffixed(source, requested)
	default:
		return "", ActionSkip, fsys.Collision(cr.op, source, requested)
	}
}

func (cr *CollisionResolver) suffixed(source, requested string) (string, Action, error) {
	dir := filepath.Dir(requested)
	base := filepath.Base(requested)
	ext := filepath.Ext(base)
	if _, ok := Extension(base); !ok {
		ext = ""
	}
	stem := strings.TrimSuffix(base, ext)

	counter := cr.counters[requested]
	if counter == 0 {
		counter = 1
	}

	for {
		candidate := filepath.Join(dir, fmt.Sprintf("%s - dup%d%s", stem, counter, ext))
		taken, _, err := cr.taken(source, candidate)
		if err != nil {
			return "", ActionSkip, err
		}
		if !taken {
			cr.counters[requested] = counter + 1
			cr.owners[candidate] = source
			return candidate, ActionMove, nil
		}
		counter++
	}
}

// taken reports whether target is claimed by another source or exists on
// disk. Callers hold cr.mu.
func (cr *CollisionResolver) taken(source, target string) (taken, isDir bool, err error) {
	owner, claimed := cr.owners[target]
	claimed = claimed && owner != source

	info, err := cr.fs.Lstat(target)
	if err != nil {
		err = fsys.Classify(err, "stat", target)
		if fsys.IsNotFound(err) {
			return claimed, false, nil
		}
		return false, false, err
	}
	if target == source && !claimed {
		return false, false, nil
	}
	return true, info.IsDir(), nil
}
