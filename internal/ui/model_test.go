package ui

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quoteterm/internal/autosave"
	"quoteterm/internal/bus"
	"quoteterm/internal/config"
	"quoteterm/internal/controller"
	"quoteterm/internal/events"
	"quoteterm/internal/pricing"
	"quoteterm/internal/quote"
	"quoteterm/internal/storage"
	"quoteterm/internal/uistate"
)

type memStore struct {
	data map[string][]byte
}

func (s *memStore) SaveSnapshot(_ context.Context, key string, data []byte) error {
	s.data[key] = append([]byte(nil), data...)
	return nil
}

func (s *memStore) LoadSnapshot(_ context.Context, key string) (*storage.Snapshot, error) {
	data, ok := s.data[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &storage.Snapshot{Key: key, Data: data, UpdatedAt: time.Now()}, nil
}

func (s *memStore) DeleteSnapshot(_ context.Context, key string) error {
	delete(s.data, key)
	return nil
}

type session struct {
	m         *model
	quotes    *quote.Store
	ctrl      *controller.Controller
	snapshots *memStore
	exportDir string
}

func newSession(t *testing.T) *session {
	t.Helper()
	dir := t.TempDir()
	cfg, err := config.LoadFrom(filepath.Join(dir, "config.json"))
	require.NoError(t, err)
	cfg.Config.ExportDir = filepath.Join(dir, "exports")

	catalog, err := config.DefaultCatalog()
	require.NoError(t, err)
	logger := log.New(io.Discard, "", 0)
	b := bus.New[events.Kind, events.Event](logger)
	quotes := quote.NewStore(quote.RollerBlind, quote.Rules{
		FabricTypes:   catalog.FabricTypes,
		HeavyDutyArea: catalog.HeavyDutyArea,
	})
	ctrl := controller.New(controller.Options{
		Bus:     b,
		Quotes:  quotes,
		UI:      uistate.NewStore(),
		Engine:  pricing.NewEngine(catalog),
		Factory: pricing.NewFactory(catalog),
		Logger:  logger,
		Now:     func() time.Time { return time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC) },
	})
	snapshots := &memStore{data: map[string][]byte{}}
	m := newModel(Options{
		Bus:        b,
		Controller: ctrl,
		Saver:      autosave.New(snapshots, "quote", logger),
		Config:     cfg,
		Logger:     logger,
	})
	return &session{m: m, quotes: quotes, ctrl: ctrl, snapshots: snapshots, exportDir: cfg.Config.ExportDir}
}

func (s *session) typeKeys(text string) {
	for _, r := range text {
		s.m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (s *session) press(keys ...tea.KeyType) {
	for _, k := range keys {
		s.m.Update(tea.KeyMsg{Type: k})
	}
}

// seed writes rows straight into the document and republishes.
func (s *session) seed(rows ...[3]any) {
	for i, r := range rows {
		s.quotes.UpdateItemValue(i, quote.FieldWidth, r[0].(int))
		s.quotes.UpdateItemValue(i, quote.FieldHeight, r[1].(int))
		s.quotes.SetItemType(i, r[2].(string))
	}
	s.ctrl.PublishState()
}

func (s *session) item(i int) quote.LineItem {
	return s.m.items()[i]
}

func TestInitialRender(t *testing.T) {
	s := newSession(t)
	view := s.m.View()
	assert.Contains(t, view, "Quote-Term")
	assert.Contains(t, view, "Quick Quote")
	assert.Contains(t, view, "Width")
	assert.Contains(t, view, "───", "header rule")
	assert.Len(t, s.m.items(), 1)
}

func TestKeypadEntry(t *testing.T) {
	s := newSession(t)

	s.typeKeys("1200")
	assert.Contains(t, s.m.View(), "1200")
	s.press(tea.KeyEnter)
	s.typeKeys("1500")
	s.press(tea.KeyEnter)

	require.Len(t, s.m.items(), 2)
	assert.Equal(t, 1200, *s.item(0).Width)
	assert.Equal(t, 1500, *s.item(0).Height)
	assert.Equal(t, uistate.Cell{Row: 1, Column: quote.FieldWidth}, s.m.state.UI.ActiveCell)
	assert.Contains(t, s.m.View(), "outdated")
}

func TestValidationNotice(t *testing.T) {
	s := newSession(t)
	s.typeKeys("99")
	s.press(tea.KeyEnter)

	assert.Equal(t, events.LevelError, s.m.notice.Level)
	assert.Equal(t, "Width must be between 250 and 3300.", s.m.notice.Message)
	assert.Contains(t, s.m.View(), "Width must be between 250 and 3300.")
}

func TestCalculateKey(t *testing.T) {
	s := newSession(t)
	s.seed([3]any{1000, 1000, "B1"})

	s.typeKeys("c")
	require.NotNil(t, s.m.summary().TotalSum)
	assert.Equal(t, 91.0, *s.m.summary().TotalSum)
	assert.Contains(t, s.m.View(), "91.00")
	assert.False(t, s.m.state.UI.SumOutdated)
}

func TestDetailTabsAndCursor(t *testing.T) {
	s := newSession(t)
	s.seed([3]any{1000, 1000, "B1"})

	s.press(tea.KeyTab)
	assert.Equal(t, uistate.ViewDetailConfig, s.m.state.UI.CurrentView)
	s.typeKeys("3k")
	assert.Equal(t, uistate.TabK3, s.m.state.UI.ActiveTab)
	assert.Equal(t, uistate.EditK3, s.m.state.UI.ActiveEditMode)

	// the cursor settles on the last visible column
	assert.Equal(t, quote.FieldLR, s.m.cursor.Column)
	s.press(tea.KeyEnter)
	assert.Equal(t, "L", s.item(0).LR)

	s.press(tea.KeyLeft)
	s.press(tea.KeyEnter)
	assert.Equal(t, "IN", s.item(0).OI)

	s.press(tea.KeyEsc)
	assert.Equal(t, uistate.ViewQuickQuote, s.m.state.UI.CurrentView)
}

func TestLocationPrompt(t *testing.T) {
	s := newSession(t)
	s.seed([3]any{1000, 1000, "B1"}, [3]any{1200, 1000, "B1"})
	s.press(tea.KeyTab)

	s.typeKeys("l")
	require.Equal(t, promptLocation, s.m.prompt.kind)
	assert.Equal(t, 0, s.m.prompt.row)

	s.typeKeys("Hall")
	s.press(tea.KeyEnter)
	assert.Equal(t, "Hall", s.item(0).Location)
	assert.Equal(t, 1, s.m.prompt.row)

	s.press(tea.KeyEsc)
	assert.False(t, s.m.prompt.active())
	assert.Equal(t, uistate.EditNone, s.m.state.UI.ActiveEditMode)
}

func TestChainPrompt(t *testing.T) {
	s := newSession(t)
	s.seed([3]any{1000, 1000, "B1"})
	s.press(tea.KeyTab)
	s.typeKeys("5n")
	require.Equal(t, quote.FieldChain, s.m.cursor.Column)

	s.press(tea.KeyEnter)
	require.Equal(t, promptChain, s.m.prompt.kind)

	s.typeKeys("abc")
	s.press(tea.KeyEnter)
	assert.Equal(t, "Only positive integers are allowed.", s.m.notice.Message)
	assert.True(t, s.m.prompt.active())

	s.m.prompt.input.SetValue("800")
	s.press(tea.KeyEnter)
	require.NotNil(t, s.item(0).Chain)
	assert.Equal(t, 800, *s.item(0).Chain)
	assert.False(t, s.m.prompt.active())
}

func TestLightFilterOverwriteConfirm(t *testing.T) {
	s := newSession(t)
	s.seed([3]any{1000, 1000, "B2"})
	s.press(tea.KeyTab)
	s.typeKeys("2L ")
	assert.Equal(t, []int{0}, s.m.state.UI.LFSelected)

	s.typeKeys("p")
	require.Equal(t, promptPanel, s.m.prompt.kind)
	s.typeKeys("Linen")
	s.press(tea.KeyEnter)
	s.typeKeys("White")
	s.press(tea.KeyEnter)
	assert.Equal(t, quote.LightFilterName+"Linen", s.item(0).Fabric)
	assert.False(t, s.m.prompt.active())

	s.typeKeys("f")
	require.NotNil(t, s.m.confirm)
	assert.Contains(t, s.m.View(), "Continuing will overwrite this data")

	s.typeKeys("y")
	assert.Nil(t, s.m.confirm)
	assert.Equal(t, uistate.EditK2, s.m.state.UI.ActiveEditMode)
	assert.Empty(t, s.m.state.UI.LFModified)
}

func TestFabricPanelByType(t *testing.T) {
	s := newSession(t)
	s.seed([3]any{1000, 1000, "B1"}, [3]any{1200, 1000, "SN"})
	s.press(tea.KeyTab)
	s.typeKeys("2fp")
	require.Len(t, s.m.prompt.panel, 4)

	s.typeKeys("Blockout")
	s.press(tea.KeyEnter)
	assert.Equal(t, "Blockout", s.item(0).Fabric)
	assert.Equal(t, "B1 color", s.m.prompt.label)

	s.press(tea.KeyEsc)
	assert.False(t, s.m.prompt.active())
	assert.Equal(t, uistate.EditK2, s.m.state.UI.ActiveEditMode)
}

func TestF2PromptSequence(t *testing.T) {
	s := newSession(t)
	s.seed([3]any{1000, 1000, "B1"})
	s.press(tea.KeyTab)

	s.typeKeys("7")
	assert.Equal(t, uistate.TabF2, s.m.state.UI.ActiveTab)
	require.Equal(t, promptF2, s.m.prompt.kind)
	assert.Equal(t, uistate.F2WifiQty, s.m.prompt.f2)

	s.typeKeys("2")
	s.press(tea.KeyEnter)
	require.NotNil(t, s.m.state.UI.F2.WifiQty)
	assert.Equal(t, 2.0, *s.m.state.UI.F2.WifiQty)
	assert.Equal(t, 400.0, s.m.state.UI.F2.Totals.WifiSum)
	assert.Equal(t, uistate.F2DeliveryQty, s.m.prompt.f2)

	s.press(tea.KeyEsc)
	s.typeKeys("d")
	assert.True(t, s.m.state.UI.F2.DeliveryFeeExcluded)
	assert.Contains(t, s.m.View(), "excl. delivery")
}

func TestRemoteDistributionPrompt(t *testing.T) {
	s := newSession(t)
	s.quotes.UpdateAccessories(func(a *quote.Accessories) { a.Remote.Count = 3 })
	s.ctrl.PublishState()
	s.press(tea.KeyTab)
	s.typeKeys("6p")
	require.Equal(t, promptRemotes, s.m.prompt.kind)

	s.typeKeys("one")
	s.press(tea.KeyEnter)
	assert.Equal(t, "Enter two numbers, e.g. 2 1", s.m.errMessage)

	s.m.prompt.input.SetValue("1 2")
	s.press(tea.KeyEnter)
	require.NotNil(t, s.m.state.UI.F1.Remote16Ch)
	assert.Equal(t, 2, *s.m.state.UI.F1.Remote16Ch)
	assert.Equal(t, 320.0, s.m.state.UI.F1.Total)
}

func TestSaveWritesFile(t *testing.T) {
	s := newSession(t)
	s.seed([3]any{1000, 1000, "B1"})

	s.press(tea.KeyCtrlS)
	path := filepath.Join(s.exportDir, "quote-202405010930.json")
	assert.Equal(t, "Saved "+path, s.m.infoMessage)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"width": 1000`)

	s.press(tea.KeyCtrlE)
	require.Equal(t, promptExport, s.m.prompt.kind)
	s.m.prompt.input.SetValue("xlsx")
	s.press(tea.KeyEnter)
	_, err = os.Stat(filepath.Join(s.exportDir, "quote-202405010930.xlsx"))
	assert.NoError(t, err)
}

func TestLoadFlow(t *testing.T) {
	s := newSession(t)
	s.seed([3]any{1000, 1000, "B1"})
	path := filepath.Join(t.TempDir(), "q.csv")
	require.NoError(t, os.WriteFile(path, []byte("#,Width,Height,Type,Price\n1,800,900,B2,55\n"), 0o644))

	s.press(tea.KeyCtrlO)
	require.True(t, s.m.confirmLoad)
	s.press(tea.KeyEsc)
	assert.False(t, s.m.confirmLoad)

	s.press(tea.KeyCtrlO)
	s.typeKeys("l")
	require.Equal(t, promptLoadPath, s.m.prompt.kind)
	s.m.prompt.input.SetValue(path)
	s.press(tea.KeyEnter)

	assert.Equal(t, "Successfully loaded data from q.csv", s.m.notice.Message)
	require.Len(t, s.m.items(), 2)
	assert.Equal(t, 800, *s.item(0).Width)

	s.press(tea.KeyCtrlO)
	s.typeKeys("l")
	s.m.prompt.input.SetValue(filepath.Join(t.TempDir(), "missing.csv"))
	s.press(tea.KeyEnter)
	assert.Contains(t, s.m.errMessage, "open file")
}

func TestAutosaveAndRestore(t *testing.T) {
	s := newSession(t)
	s.m.Update(autosaveTickMsg(time.Now()))
	assert.Empty(t, s.snapshots.data, "empty quotes are not saved")

	s.seed([3]any{1500, 1200, "B3"})
	_, cmd := s.m.Update(autosaveTickMsg(time.Now()))
	assert.NotNil(t, cmd)
	require.Contains(t, s.snapshots.data, "quote")

	other := newSession(t)
	other.m.Update(restoreMsg{data: s.snapshots.data["quote"]})
	require.Len(t, other.m.items(), 2)
	assert.Equal(t, 1500, *other.item(0).Width)
	assert.Equal(t, "Successfully loaded data from "+autosave.RestoreFileName, other.m.notice.Message)
}

func TestQuitSaves(t *testing.T) {
	s := newSession(t)
	s.seed([3]any{1000, 1000, "B1"})

	_, cmd := s.m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Contains(t, s.snapshots.data, "quote")
}

func TestResetDiscardsAutosave(t *testing.T) {
	s := newSession(t)
	s.seed([3]any{1000, 1000, "B1"})
	s.m.Update(autosaveTickMsg(time.Now()))
	require.Contains(t, s.snapshots.data, "quote")

	s.press(tea.KeyCtrlN)
	require.Len(t, s.m.items(), 1)
	assert.NotContains(t, s.snapshots.data, "quote")

	_, cmd := s.m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.NotContains(t, s.snapshots.data, "quote")

	restore := s.m.restoreCmd()
	require.NotNil(t, restore)
	assert.Nil(t, restore())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	got, err := expandPath("~/quotes/a.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "quotes", "a.json"), got)

	_, err = expandPath("  ")
	assert.Error(t, err)
}

func TestParsePair(t *testing.T) {
	a, b, err := parsePair("2, 1")
	require.NoError(t, err)
	assert.Equal(t, 2, a)
	assert.Equal(t, 1, b)

	_, _, err = parsePair("3")
	assert.Error(t, err)
}
