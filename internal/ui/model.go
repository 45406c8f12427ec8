package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"remotetv/internal/catalog"
	"remotetv/internal/config"
	"remotetv/internal/domain"
	"remotetv/internal/eventbus"
	"remotetv/internal/imageload"
	"remotetv/internal/library"
	"remotetv/internal/ui/card"
	"remotetv/internal/ui/focustrap"
	"remotetv/internal/ui/grid"
	"remotetv/internal/ui/input"
	"remotetv/internal/ui/input/modes"
	inputtypes "remotetv/internal/ui/input/types"
	"remotetv/internal/ui/modal"
	"remotetv/internal/ui/nav"
	"remotetv/internal/ui/views"
)

const (
	headerHeight = 2
	footerHeight = 2
	gridHeader   = 2
	statusTTL    = 4 * time.Second
)

// Deps are the services the UI talks to
type Deps struct {
	Config    *config.Config
	Log       *zap.Logger
	Bus       eventbus.EventBus
	Catalog   catalog.Provider
	Library   library.Store
	Images    *imageload.Loader
	Preloader *card.Preloader
	Player    *Player
	Pager     *PagerOps

	// ReadyMarker prints __READY__ in the footer for terminal-driven tests
	ReadyMarker bool
}

// Model represents the UI state
type Model struct {
	cfg       *config.Config
	log       *zap.Logger
	bus       eventbus.EventBus
	data      *loader
	images    *imageload.Loader
	preloader *card.Preloader
	player    *Player
	pager     *PagerOps
	helpText  *HelpRenderer
	ready     bool

	width  int
	height int
	paused bool // an external program owns the terminal

	page      Page
	home      *Home
	homeStale bool
	grids     map[Page]*gridPage
	layout    grid.Layout
	cardOpts  card.Options

	styles  *views.Styles
	cards   *views.CardRenderer
	popup   *views.PopupRenderer
	keys    input.KeyMap
	input   *input.Handler
	nav     *nav.Navigator
	help    help.Model
	spinner spinner.Model

	searchInput textinput.Model
	search      *modes.SearchMode
	query       string

	modal   *modal.Modal
	hovered *card.Model

	status      string
	statusStyle lipgloss.Style
	statusSeq   int

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(d Deps) *Model {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Player == nil {
		d.Player = NewPlayer(d.Log, d.Config.Player)
	}
	if d.Pager == nil {
		d.Pager = NewPagerOps()
	}
	ui := d.Config.UI
	layout := grid.Layout{CardWidth: ui.CardWidth, CardHeight: ui.CardHeight, GapH: grid.Portrait.GapH, GapV: grid.Portrait.GapV}
	if layout.CardWidth <= 0 || layout.CardHeight <= 0 {
		layout = grid.Portrait
	}
	cardOpts := card.Options{HoverDelay: ui.HoverDelay, Modal: ui.ActionModal, Images: ui.Images}

	styles := views.NewStyles()
	m := &Model{
		cfg:       d.Config,
		log:       d.Log,
		bus:       d.Bus,
		data:      &loader{log: d.Log, catalog: d.Catalog, library: d.Library},
		images:    d.Images,
		preloader: d.Preloader,
		player:    d.Player,
		pager:     d.Pager,
		helpText:  NewHelpRenderer(),
		ready:     d.ReadyMarker,
		layout:    layout,
		cardOpts:  cardOpts,
		home:      newHome(layout),
		grids:     make(map[Page]*gridPage),
		styles:    styles,
		cards:     views.NewCardRenderer(styles, layout.CardWidth, layout.CardHeight),
		popup:     views.NewPopupRenderer(styles),
		keys:      input.DefaultKeyMap(),
		nav:       nav.New(),
		help:      help.New(),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	m.input = input.New(m.keys, m.nav, ui.DPadDebounce)

	empty := map[Page]string{
		PageMovies: "No movies found",
		PageSeries: "No series found",
		PageMyList: "Your lists are empty",
		PageSearch: "Type a title and press enter",
	}
	for p := PageMovies; p < pageCount; p++ {
		g := grid.New(p.String(), grid.Options{
			Layout:        layout,
			ForcedColumns: ui.Columns,
			LookAhead:     ui.LoadAhead,
			SkeletonCount: ui.SkeletonCount,
			EmptyMessage:  empty[p],
			Smooth:        true,
			Cards:         cardOpts,
		})
		g.SetOffsetTop(gridHeader)
		m.grids[p] = &gridPage{grid: g}
	}

	m.searchInput = textinput.New()
	m.search = modes.NewSearchMode(&m.searchInput)
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.player.SetProgram(p)
	m.pager.SetProgram(p)
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.data.home(), m.spinner.Tick)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, m.resize()

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	}
	return m, m.handleNonKeyboardMsg(msg)
}

func (m *Model) bodyHeight() int {
	return max(1, m.height-headerHeight-footerHeight)
}

func (m *Model) resize() tea.Cmd {
	body := m.bodyHeight()
	m.home.SetSize(m.width, body)

	keep := -1
	if gp := m.grids[m.page]; gp != nil {
		keep = gp.grid.Focused()
	}
	for _, gp := range m.grids {
		gp.grid.SetSize(m.width, body)
	}
	m.registerRows()
	if gp := m.grids[m.page]; gp != nil && keep >= 0 {
		m.nav.SetPosition(gp.grid.Position(keep))
	} else {
		m.nav.FocusFirst()
	}
	return m.focusCurrent()
}

// handleKey routes global keys first, then hands the key to the dispatcher
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	if m.paused {
		return nil
	}
	if m.input.Capture() == nil {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return tea.Quit
		case key.Matches(msg, m.keys.Help):
			return m.showInPager(m.helpText.renderHelpContent())
		case key.Matches(msg, m.keys.NextPage):
			return m.switchPage((m.page + 1) % pageCount)
		case key.Matches(msg, m.keys.PrevPage):
			return m.switchPage((m.page + pageCount - 1) % pageCount)
		case key.Matches(msg, m.keys.Search):
			if m.page == PageSearch {
				return m.openSearch()
			}
			return m.switchPage(PageSearch)
		}
	}

	res := m.input.HandleKey(msg)
	if res.Debounced {
		return nil
	}
	return m.processActions(res.Actions)
}

func (m *Model) processActions(actions []inputtypes.Action) tea.Cmd {
	var cmds []tea.Cmd
	for _, a := range actions {
		if cmd := m.processAction(a); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// processAction processes an action from the dispatcher or a card
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	m.log.Debug("processAction", zap.String("type", action.Type()))
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		if a.Moved {
			return m.focusCurrent()
		}
		if a.Key == inputtypes.KeyUp && m.page == PageSearch {
			return m.openSearch()
		}

	case inputtypes.FocusAction:
		id, err := uuid.Parse(a.ID)
		if err != nil {
			return nil
		}
		if c := m.findCard(id); c != nil {
			return m.processActions(m.input.Focus(c))
		}

	case inputtypes.SubmitTextAction:
		q := strings.TrimSpace(a.Text)
		if q == "" {
			return nil
		}
		m.query = q
		gp := m.grids[PageSearch]
		gp.grid.SetItems(nil)
		gp.grid.SetLoading(true)
		m.registerRows()
		return m.data.search(q)

	case inputtypes.QuitAction:
		return tea.Quit

	case card.ScheduleHover:
		return tea.Tick(a.After, func(time.Time) tea.Msg {
			return card.HoverDue{Token: a.Token, Seq: a.Seq}
		})

	case card.StartPreload:
		if m.preloader == nil {
			return nil
		}
		return m.preloader.Cmd(a.Token, a.Item)

	case card.LoadImagesAction:
		return m.loadImages(a.Requests)

	case card.PlayAction:
		return m.play(a.Item)
	case modal.PlayAction:
		m.modal = nil
		return m.play(a.Item)

	case card.DetailsAction:
		return m.showDetails(a.Item)
	case modal.DetailsAction:
		m.modal = nil
		return m.showDetails(a.Item)

	case card.ToggleAction:
		return func() tea.Msg {
			result := m.data.toggle(a.Item, a.List)
			m.publish(domain.LibraryChangedEvent{TMDBID: a.Item.TMDBID, Kind: a.Item.Kind, List: a.List, Result: result})
			return card.Toggled{Token: a.Token, List: a.List, Result: result}
		}

	case card.SignInRequiredAction:
		return m.setStatus("Sign in to use your lists", m.styles.StatusWarning)

	case card.OpenModalAction:
		md, cmd := modal.Open(a.Item, a.InList, a.Token)
		m.modal = md
		return tea.Batch(cmd, m.processActions(m.input.Push(md)))

	case modal.ToggleListAction:
		if c := m.findCard(a.Token); c != nil {
			cmd := m.processActions(c.Apply(card.Toggle{List: domain.ListWatchlist}))
			m.syncModal(c)
			return cmd
		}
		return func() tea.Msg {
			if a.Item.TMDBID == 0 {
				return modalToggledMsg{item: a.Item, result: domain.ToggleUnavailable}
			}
			result := m.data.toggle(a.Item, domain.ListWatchlist)
			m.publish(domain.LibraryChangedEvent{TMDBID: a.Item.TMDBID, Kind: a.Item.Kind, List: domain.ListWatchlist, Result: result})
			return modalToggledMsg{item: a.Item, result: result}
		}

	case modal.CloseAction:
		m.modal = nil
	}
	return nil
}

// handleNonKeyboardMsg handles every message that is not a key or mouse event
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case EventMsg:
		return m.handleEvent(msg.Event)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case homeLoadedMsg:
		m.home.SetRows(msg.rows, m.cardOpts, msg.progress)
		m.home.SetSize(m.width, m.bodyHeight())
		m.homeStale = false
		if m.page != PageHome {
			return nil
		}
		m.registerRows()
		m.nav.FocusFirst()
		return m.focusCurrent()

	case gridPageMsg:
		return m.handleGridPage(msg)

	case searchResultsMsg:
		if msg.query != m.query {
			return nil
		}
		gp := m.grids[PageSearch]
		gp.grid.SetLoading(false)
		gp.grid.SetItems(msg.items)
		gp.loaded = true
		var cmd tea.Cmd
		if msg.err != nil {
			m.log.Warn("search failed", zap.String("query", msg.query), zap.Error(msg.err))
			cmd = m.setStatus("Search failed", m.styles.StatusError)
		}
		if m.page != PageSearch {
			return cmd
		}
		m.registerRows()
		m.nav.FocusFirst()
		return tea.Batch(cmd, m.focusCurrent())

	case card.HoverDue:
		return m.applyCard(msg.Token, msg)
	case card.Preloaded:
		return m.applyCard(msg.Token, msg)
	case card.Toggled:
		cmd := m.applyCard(msg.Token, msg)
		if c := m.findCard(msg.Token); c != nil {
			m.syncModal(c)
		}
		return cmd

	case imageload.LoadedMsg:
		for _, set := range m.sets() {
			c := set.ByImage(msg.ID)
			if c == nil {
				continue
			}
			next, reqs, ok := c.WithImage(msg)
			if ok {
				*c = next
			}
			return m.loadImages(reqs)
		}

	case focustrap.MountedMsg:
		if m.modal != nil && msg.Scope == modal.OwnerName {
			m.modal.Mounted()
		}

	case grid.ScrollMsg:
		for p, gp := range m.grids {
			if gp.grid.Name() != msg.Grid {
				continue
			}
			cmd := gp.grid.Update(msg)
			if p != m.page {
				return cmd
			}
			return tea.Batch(cmd, m.loadImages(gp.grid.Sync()), gp.grid.CheckSentinel())
		}

	case modalToggledMsg:
		if msg.result == domain.ToggleAuthRequired {
			return m.setStatus("Sign in to use your lists", m.styles.StatusWarning)
		}

	case playedMsg:
		return m.handlePlayed(msg)

	case pagerMsg:
		if msg.err != nil {
			m.log.Warn("pager failed", zap.Error(msg.err))
			return m.setStatus(fmt.Sprintf("Pager failed: %v", msg.err), m.styles.StatusError)
		}

	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}

	case pauseRenderingMsg:
		m.paused = true

	case resumeRenderingMsg:
		m.paused = false
	}
	return nil
}

// handleEvent processes domain events arriving from the bus
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case domain.LibraryChangedEvent:
		if e.Result == domain.ToggleAdded || e.Result == domain.ToggleRemoved {
			m.grids[PageMyList].stale = true
			m.homeStale = true
		}
	case domain.ProgressSavedEvent:
		m.homeStale = true
	case domain.PlaybackFinishedEvent:
		if e.Err != nil && !errors.Is(e.Err, ErrNoPlayer) && !errors.Is(e.Err, ErrNoStream) {
			return m.setStatus(fmt.Sprintf("Player exited: %v", e.Err), m.styles.StatusError)
		}
	case domain.ErrorEvent:
		return m.setStatus(e.Message, m.styles.StatusError)
	}
	return nil
}

func (m *Model) handleGridPage(msg gridPageMsg) tea.Cmd {
	gp := m.grids[msg.page]
	gp.more = false
	gp.grid.SetLoading(false)
	if msg.err != nil {
		m.log.Warn("page load failed", zap.String("page", msg.page.String()), zap.Int("number", msg.number), zap.Error(msg.err))
		gp.grid.Finished()
		m.updatePagination(msg.page)
		return m.setStatus(fmt.Sprintf("Could not load %s", strings.ToLower(msg.page.String())), m.styles.StatusError)
	}

	first := msg.number <= 1
	if first {
		gp.grid.SetItems(msg.items)
	} else {
		seen := make(map[string]bool, gp.grid.Len())
		for _, it := range gp.grid.Items() {
			seen[it.Key()] = true
		}
		fresh := make([]domain.MediaItem, 0, len(msg.items))
		for _, it := range msg.items {
			if !seen[it.Key()] {
				fresh = append(fresh, it)
			}
		}
		gp.grid.Append(fresh)
	}
	gp.number = msg.number
	gp.hasMore = msg.hasMore
	gp.loaded = true
	gp.stale = false
	m.updatePagination(msg.page)

	if msg.page != m.page {
		return nil
	}
	if first {
		m.registerRows()
		m.nav.FocusFirst()
		return m.focusCurrent()
	}
	for r := 0; r < gp.grid.Rows(); r++ {
		m.nav.SetRow(r, gp.grid.RowLen(r))
	}
	return tea.Batch(m.loadImages(gp.grid.Sync()), gp.grid.CheckSentinel())
}

// updatePagination hands the grid its current paging flags
func (m *Model) updatePagination(p Page) {
	gp := m.grids[p]
	kind, paged := pageKind(p)
	if !paged {
		gp.grid.SetPagination(grid.Pagination{})
		return
	}
	gp.grid.SetPagination(grid.Pagination{
		HasMore:       gp.hasMore,
		IsLoadingMore: gp.more,
		LoadMore: func() tea.Cmd {
			gp.more = true
			m.updatePagination(p)
			return m.data.popular(p, kind, gp.number+1)
		},
	})
}

func pageKind(p Page) (domain.MediaKind, bool) {
	switch p {
	case PageMovies:
		return domain.KindMovie, true
	case PageSeries:
		return domain.KindSeries, true
	}
	return "", false
}

// switchPage remembers the focus of the page being left and restores the
// focus of the page being entered
func (m *Model) switchPage(p Page) tea.Cmd {
	if p == m.page {
		return nil
	}
	m.hoverLeave()
	m.nav.Save(m.page.String())
	m.processActions(m.input.Focus(nil))
	m.page = p

	m.registerRows()
	if !m.nav.Restore(p.String()) {
		m.nav.FocusFirst()
	}
	return tea.Batch(m.ensureLoaded(), m.focusCurrent())
}

func (m *Model) ensureLoaded() tea.Cmd {
	switch m.page {
	case PageHome:
		if m.homeStale && !m.home.loading {
			m.home.loading = true
			return m.data.home()
		}
	case PageMovies, PageSeries:
		gp := m.grids[m.page]
		if !gp.loaded && !gp.grid.Loading() {
			gp.grid.SetLoading(true)
			kind, _ := pageKind(m.page)
			return m.data.popular(m.page, kind, 1)
		}
	case PageMyList:
		gp := m.grids[PageMyList]
		if (!gp.loaded || gp.stale) && !gp.grid.Loading() {
			gp.grid.SetLoading(true)
			return m.data.myList()
		}
	case PageSearch:
		if m.query == "" {
			return m.openSearch()
		}
	}
	return nil
}

func (m *Model) openSearch() tea.Cmd {
	if m.input.Captured(modes.SearchOwner) {
		return nil
	}
	m.hoverLeave()
	return m.processActions(m.input.Push(m.search))
}

// registerRows rebuilds the navigator rows for the current page
func (m *Model) registerRows() {
	m.nav.Clear()
	if m.page == PageHome {
		for i := range m.home.rows {
			r := m.home.rows[i]
			if !r.Empty() {
				m.nav.SetRow(i, r.Len())
			}
		}
		return
	}
	g := m.grids[m.page].grid
	for r := 0; r < g.Rows(); r++ {
		m.nav.SetRow(r, g.RowLen(r))
	}
}

// focusCurrent mounts and focuses the card under the navigator's focus
func (m *Model) focusCurrent() tea.Cmd {
	node, ok := m.nav.Focused()
	var c *card.Model
	var cmds []tea.Cmd

	switch {
	case m.page == PageHome:
		if r := m.home.Row(node.Row); ok && r != nil {
			if r.Focus(node.Col) {
				m.nav.SetRow(node.Row, r.Len())
			}
			m.home.ScrollToRow(node.Row)
			cmds = append(cmds, m.loadImages(m.home.Sync()))
			c = r.Cards().At(node.Col)
		} else {
			cmds = append(cmds, m.loadImages(m.home.Sync()))
		}
	default:
		g := m.grids[m.page].grid
		if ok {
			idx := g.Index(node.Row, node.Col)
			cmds = append(cmds, g.Focus(idx))
			cmds = append(cmds, m.loadImages(g.Sync()))
			c = g.Cards().At(idx)
		} else {
			g.Blur()
			cmds = append(cmds, m.loadImages(g.Sync()))
		}
		cmds = append(cmds, g.CheckSentinel())
	}

	if c == nil {
		m.processActions(m.input.Focus(nil))
		return tea.Batch(cmds...)
	}
	cmds = append(cmds, m.processActions(m.input.Focus(c)))
	return tea.Batch(cmds...)
}

// handleMouse turns pointer motion into debounced hover and clicks into focus
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.paused || m.input.Capture() != nil {
		return nil
	}
	c, row, col, ok := m.hitTest(msg.X, msg.Y-headerHeight)
	switch msg.Action {
	case tea.MouseActionMotion:
		if !ok {
			return m.processActions(m.hoverLeave())
		}
		if c == m.hovered {
			return nil
		}
		actions := m.hoverLeave()
		m.hovered = c
		actions = append(actions, c.Apply(card.Activate{Reason: card.ReasonPointer})...)
		return m.processActions(actions)

	case tea.MouseActionPress:
		if !ok || msg.Button != tea.MouseButtonLeft {
			return nil
		}
		// clicks focus; they never open the buttons
		m.nav.SetPosition(row, col)
		return m.focusCurrent()
	}
	return nil
}

func (m *Model) hitTest(x, y int) (*card.Model, int, int, bool) {
	if y < 0 || y >= m.bodyHeight() {
		return nil, 0, 0, false
	}
	if m.page == PageHome {
		ri, col, ok := m.home.HitTest(x, y)
		if !ok {
			return nil, 0, 0, false
		}
		c := m.home.Row(ri).Cards().At(col)
		return c, ri, col, c != nil
	}
	g := m.grids[m.page].grid
	idx, ok := g.HitTest(x, y)
	if !ok {
		return nil, 0, 0, false
	}
	c := g.Cards().At(idx)
	row, col := g.Position(idx)
	return c, row, col, c != nil
}

func (m *Model) hoverLeave() []inputtypes.Action {
	if m.hovered == nil {
		return nil
	}
	c := m.hovered
	m.hovered = nil
	return c.Apply(card.Deactivate{Reason: card.ReasonPointerLeave})
}

// applyCard runs a token-addressed event against whichever card holds the
// token; results for unmounted cards are dropped
func (m *Model) applyCard(token uuid.UUID, ev card.Event) tea.Cmd {
	c := m.findCard(token)
	if c == nil {
		return nil
	}
	return m.processActions(c.Apply(ev))
}

// syncModal keeps an open modal's list label in step with its card
func (m *Model) syncModal(c *card.Model) {
	if m.modal != nil && m.modal.Token == c.Token {
		m.modal.InList = c.Status.InWatchlist
	}
}

func (m *Model) findCard(token uuid.UUID) *card.Model {
	for _, set := range m.sets() {
		if c := set.ByToken(token); c != nil {
			return c
		}
	}
	return nil
}

func (m *Model) sets() []*card.Set {
	var sets []*card.Set
	m.home.Each(func(s *card.Set) { sets = append(sets, s) })
	for p := PageMovies; p < pageCount; p++ {
		sets = append(sets, m.grids[p].grid.Cards())
	}
	return sets
}

func (m *Model) loadImages(reqs []imageload.Request) tea.Cmd {
	if m.images == nil || len(reqs) == 0 {
		return nil
	}
	return m.images.Batch(reqs)
}

func (m *Model) publish(e domain.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(e)
	}
}

// play runs the external player, then records progress
func (m *Model) play(item domain.MediaItem) tea.Cmd {
	m.publish(domain.PlaybackStartedEvent{Item: item})
	if !m.player.Available() || m.program == nil {
		return func() tea.Msg { return playedMsg{item: item, err: ErrNoPlayer} }
	}
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		seconds, err := m.player.Play(item)
		m.program.Send(resumeRenderingMsg{})
		return playedMsg{item: item, seconds: seconds, err: err}
	}
}

func (m *Model) handlePlayed(msg playedMsg) tea.Cmd {
	m.publish(domain.PlaybackFinishedEvent{Item: msg.item, Seconds: msg.seconds, Err: msg.err})
	var status tea.Cmd
	switch {
	case errors.Is(msg.err, ErrNoPlayer):
		status = m.setStatus("No player configured; marked as started", m.styles.StatusWarning)
	case errors.Is(msg.err, ErrNoStream):
		status = m.setStatus("Nothing to play for this title", m.styles.StatusWarning)
	}
	if msg.item.TMDBID == 0 {
		return status
	}
	save := func() tea.Msg {
		p := domain.Progress{
			TMDBID:    msg.item.TMDBID,
			Kind:      msg.item.Kind,
			Seconds:   m.data.progress(msg.item) + msg.seconds,
			UpdatedAt: time.Now(),
		}
		m.data.saveProgress(p)
		m.publish(domain.ProgressSavedEvent{Progress: p})
		return nil
	}
	return tea.Batch(status, save)
}

// showDetails opens the full text sheet for an item in the pager
func (m *Model) showDetails(item domain.MediaItem) tea.Cmd {
	var status domain.LibraryStatus
	for _, set := range m.sets() {
		found := false
		set.Each(func(_ int, c *card.Model) {
			if !found && c.Item.Key() == item.Key() {
				status, found = c.Status, true
			}
		})
		if found {
			break
		}
	}
	var progress *domain.Progress
	if p, ok := m.home.progress[item.ID]; ok {
		progress = &p
	}
	return m.showInPager(m.helpText.renderDetails(item, status, progress))
}

// showInPager returns a command that shows content using ov pager
func (m *Model) showInPager(content string) tea.Cmd {
	if m.program == nil {
		return nil
	}
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.pager.Show(content)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return pagerMsg{err: err}
	}
}

func (m *Model) setStatus(text string, style lipgloss.Style) tea.Cmd {
	m.statusSeq++
	m.status = text
	m.statusStyle = style
	seq := m.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return statusClearMsg{seq: seq} })
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.paused {
		return ""
	}

	body := ""
	if m.page == PageHome {
		body = m.home.View(m.cards, m.styles)
	} else {
		gp := m.grids[m.page]
		footer := ""
		if gp.more {
			footer = m.spinner.View() + m.styles.Dim.Render(" Loading more…")
		}
		body = gp.grid.View(m.cards, m.styles, m.gridHeader(gp), footer)
	}

	full := lipgloss.JoinVertical(lipgloss.Left, m.header(), body, m.footer())
	if m.modal != nil {
		return m.popup.RenderPopupOverlay(full, views.ModalView(m.styles, m.modal.Model), m.height, m.width, m.styles.Modal)
	}
	return full
}

func (m *Model) header() string {
	tabs := make([]string, 0, pageCount)
	for p := PageHome; p < pageCount; p++ {
		style := m.styles.Tab
		if p == m.page {
			style = m.styles.TabActive
		}
		tabs = append(tabs, style.Render(p.String()))
	}
	line := m.styles.Title.Render("remotetv") + "  " + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if m.loading() {
		line += " " + m.spinner.View()
	}
	return line + "\n"
}

func (m *Model) loading() bool {
	if m.page == PageHome {
		return m.home.loading
	}
	gp := m.grids[m.page]
	return gp.grid.Loading() || gp.more
}

func (m *Model) gridHeader(gp *gridPage) string {
	if m.page == PageSearch {
		prompt := m.styles.Highlight.Render("Search: ")
		if m.input.Captured(modes.SearchOwner) {
			return prompt + m.searchInput.View()
		}
		return prompt + m.styles.Dim.Render(m.query+"  (/ or ↑ to edit)")
	}
	count := gp.grid.Len()
	title := m.styles.RowTitle.Render(m.page.String())
	if count == 0 {
		return title
	}
	return title + m.styles.Dim.Render(fmt.Sprintf("  %d titles", count))
}

func (m *Model) footer() string {
	status := ""
	if m.status != "" {
		status = m.statusStyle.Render(m.status)
	}
	if m.ready {
		status += " __READY__"
	}
	return status + "\n" + m.help.View(m.keys)
}
