package module

import (
	"errors"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
)

func newTestFS(t *testing.T, moduleIDs ...string) billy.Filesystem {
	t.Helper()
	fsys := memfs.New()
	for _, id := range moduleIDs {
		if err := fsys.MkdirAll(fsys.Join(ModulesDir, id), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", id, err)
		}
	}
	return fsys
}

func TestRegistryList(t *testing.T) {
	t.Run("lexicographic_order", func(t *testing.T) {
		r := NewRegistry(newTestFS(t, "ZZZZ", "AAAA", "MMMM"))
		ids, err := r.List()
		if err != nil {
			t.Fatalf("List error: %v", err)
		}
		want := []string{"AAAA", "MMMM", "ZZZZ"}
		if len(ids) != len(want) {
			t.Fatalf("List = %v, want %v", ids, want)
		}
		for i := range want {
			if ids[i] != want[i] {
				t.Errorf("List[%d] = %q, want %q", i, ids[i], want[i])
			}
		}
	})

	t.Run("skips_shared_dirs", func(t *testing.T) {
		r := NewRegistry(newTestFS(t, "VERB", "common", "inc"))
		ids, err := r.List()
		if err != nil {
			t.Fatalf("List error: %v", err)
		}
		if len(ids) != 1 || ids[0] != "VERB" {
			t.Errorf("List = %v, want [VERB]", ids)
		}
	})

	t.Run("empty_when_modules_dir_absent", func(t *testing.T) {
		r := NewRegistry(memfs.New())
		ids, err := r.List()
		if err != nil {
			t.Fatalf("List error: %v", err)
		}
		if len(ids) != 0 {
			t.Errorf("List = %v, want empty", ids)
		}
	})
}

func TestRegistryExists(t *testing.T) {
	r := NewRegistry(newTestFS(t, "VERB"))
	if !r.Exists("VERB") {
		t.Error("Exists(VERB) = false, want true")
	}
	if r.Exists("DLY1") {
		t.Error("Exists(DLY1) = true, want false")
	}
}

func TestRegistryValidate(t *testing.T) {
	r := NewRegistry(newTestFS(t, "VERB"))

	t.Run("create_rejects_taken_identity", func(t *testing.T) {
		err := r.ValidateForCreate("VERB")
		if !errors.Is(err, ErrIdentityTaken) {
			t.Errorf("ValidateForCreate(VERB) = %v, want ErrIdentityTaken", err)
		}
	})

	t.Run("create_rejects_bad_identity", func(t *testing.T) {
		err := r.ValidateForCreate("verb")
		if !errors.Is(err, ErrInvalidIdentity) {
			t.Errorf("ValidateForCreate(verb) = %v, want ErrInvalidIdentity", err)
		}
	})

	t.Run("create_accepts_fresh_identity", func(t *testing.T) {
		if err := r.ValidateForCreate("DLY1"); err != nil {
			t.Errorf("ValidateForCreate(DLY1) = %v, want nil", err)
		}
	})

	t.Run("remove_rejects_unknown_module", func(t *testing.T) {
		err := r.ValidateForRemove("DLY1")
		if !errors.Is(err, ErrUnknownModule) {
			t.Errorf("ValidateForRemove(DLY1) = %v, want ErrUnknownModule", err)
		}
	})

	t.Run("remove_accepts_registered_module", func(t *testing.T) {
		if err := r.ValidateForRemove("VERB"); err != nil {
			t.Errorf("ValidateForRemove(VERB) = %v, want nil", err)
		}
	})
}
