package integration

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/pders01/fluidcss/internal/cssgen"
	"github.com/pders01/fluidcss/internal/export"
	"github.com/pders01/fluidcss/internal/generate"
	"github.com/pders01/fluidcss/internal/scale"
	"github.com/pders01/fluidcss/internal/storage"
)

// collector tracks every regeneration like the TUI's preview pane does.
type collector struct {
	renders int
	css     string
}

func (c *collector) Render(css string) {
	c.renders++
	c.css = css
}

// TestEditSessionRoundTrip drives a full session: load state from a
// fresh store, mutate entries and parameters through the controller,
// persist, reopen, and check the regenerated CSS is identical.
func TestEditSessionRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "session.db")

	store, err := storage.NewStore(dbPath)
	if err != nil {
		t.Fatal(err)
	}

	params, err := store.LoadParameters()
	if err != nil {
		t.Fatal(err)
	}
	tables, err := store.LoadTables()
	if err != nil {
		t.Fatal(err)
	}

	out := &collector{}
	ctrl := generate.NewController(params, tables, out)

	// An editing session touching every mutation class.
	if _, err := ctrl.AddEntry("hero"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := ctrl.EditEntry(2, "small"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := ctrl.DeleteEntry(1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := ctrl.SetAnchor(4); err != nil {
		t.Fatalf("anchor: %v", err)
	}
	if err := ctrl.ReorderEntries(7, 4, true); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	p := ctrl.Parameters()
	p.MaxViewport = 1920
	ctrl.SetParameters(p)
	ctrl.SetUnit(scale.UnitRem)

	wantCSS := ctrl.CSS()
	if out.css != wantCSS {
		t.Fatal("render target out of sync with controller CSS")
	}
	if out.renders < 7 {
		t.Errorf("expected a render per mutation, got %d", out.renders)
	}

	if err := store.SaveAll(ctrl.Parameters(), ctrl.Tables()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	// Reopen and rebuild; the derived CSS must be byte-identical.
	reopened, err := storage.NewStore(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	params2, err := reopened.LoadParameters()
	if err != nil {
		t.Fatal(err)
	}
	tables2, err := reopened.LoadTables()
	if err != nil {
		t.Fatal(err)
	}
	ctrl2 := generate.NewController(params2, tables2, nil)

	if got := ctrl2.CSS(); got != wantCSS {
		t.Errorf("regenerated CSS differs after reload:\n%s\nvs\n%s", got, wantCSS)
	}
}

// TestKindsStayIndependent checks the three kind tables never bleed
// into each other through persistence or the controller.
func TestKindsStayIndependent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "kinds.db")

	store, err := storage.NewStore(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	tables, err := store.LoadTables()
	if err != nil {
		t.Fatal(err)
	}
	ctrl := generate.NewController(scale.DefaultParameters(), tables, nil)

	if _, err := ctrl.AddEntry("class-only"); err != nil {
		t.Fatalf("add: %v", err)
	}
	ctrl.SetActiveKind(cssgen.KindVariable)
	if _, err := ctrl.AddEntry("var-only"); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := store.SaveAll(ctrl.Parameters(), ctrl.Tables()); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.LoadTables()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := loaded[cssgen.KindClass].Get(7); !ok {
		t.Error("class table lost its custom entry")
	}
	if _, ok := loaded[cssgen.KindVariable].Get(7); !ok {
		t.Error("variable table lost its custom entry")
	}
	if loaded[cssgen.KindUtility].Len() != 6 {
		t.Errorf("utility table should stay at the default seed, got %d entries", loaded[cssgen.KindUtility].Len())
	}

	classEntry, _ := loaded[cssgen.KindClass].Get(7)
	varEntry, _ := loaded[cssgen.KindVariable].Get(7)
	if classEntry.Name == varEntry.Name {
		t.Error("expected independently named entries per kind")
	}
}

// TestExportImportAcrossStores moves a configuration between two
// databases through the portable TOML blob.
func TestExportImportAcrossStores(t *testing.T) {
	tmpDir := t.TempDir()

	src, err := storage.NewStore(filepath.Join(tmpDir, "src.db"))
	if err != nil {
		t.Fatal(err)
	}
	tables, err := src.LoadTables()
	if err != nil {
		t.Fatal(err)
	}
	ctrl := generate.NewController(scale.DefaultParameters(), tables, nil)
	if _, err := ctrl.AddEntry("hero"); err != nil {
		t.Fatalf("add: %v", err)
	}
	p := ctrl.Parameters()
	p.MinScaleRatio = 1.25
	ctrl.SetParameters(p)
	srcCSS := ctrl.CSS()

	blobPath := filepath.Join(tmpDir, "settings.toml")
	if err := export.Export(blobPath, ctrl.Parameters(), ctrl.Tables()); err != nil {
		t.Fatalf("export: %v", err)
	}
	src.Close()

	dst, err := storage.NewStore(filepath.Join(tmpDir, "dst.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer dst.Close()

	importedParams, importedTables, err := export.Import(blobPath)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if err := dst.SaveAll(importedParams, importedTables); err != nil {
		t.Fatalf("save: %v", err)
	}

	params2, err := dst.LoadParameters()
	if err != nil {
		t.Fatal(err)
	}
	tables2, err := dst.LoadTables()
	if err != nil {
		t.Fatal(err)
	}
	ctrl2 := generate.NewController(params2, tables2, nil)

	if ctrl2.CSS() != srcCSS {
		t.Error("CSS differs after export/import across stores")
	}
	if !strings.Contains(ctrl2.CSS(), ".space-hero {") {
		t.Errorf("custom entry missing after transfer:\n%s", ctrl2.CSS())
	}
}
