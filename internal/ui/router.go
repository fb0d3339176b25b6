package ui

import (
	"fmt"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// Route paths
const (
	RouteHome   = "/"
	RouteEditor = "/editor"
)

// Location identifies a page and an optional anchor inside it
type Location struct {
	Path string
	Hash string
}

// ParseLocation splits "path#hash"; an empty path means RouteHome
func ParseLocation(s string) Location {
	path, hash, _ := strings.Cut(s, "#")
	if path == "" {
		path = RouteHome
	}
	return Location{Path: path, Hash: hash}
}

// String joins the location back into "path#hash" form
func (l Location) String() string {
	if l.Hash == "" {
		return l.Path
	}
	return l.Path + "#" + l.Hash
}

// ScrollKind tells the router what to do with the scroll offset after navigation
type ScrollKind int

const (
	// ScrollKeep leaves the offset unchanged
	ScrollKeep ScrollKind = iota
	// ScrollRestore returns to an offset saved in history
	ScrollRestore
	// ScrollToAnchor brings the element registered under the hash into view
	ScrollToAnchor
	// ScrollToTop resets the offset to the origin
	ScrollToTop
)

// ScrollTarget is the outcome of ScrollBehavior
type ScrollTarget struct {
	Kind   ScrollKind
	Offset fyne.Position
	Anchor string
}

// ScrollBehavior decides the scroll position after moving from one location to
// another. A saved position (history navigation) wins, then an anchor in the
// target, then a jump to the top when the page changed.
func ScrollBehavior(to, from Location, saved *fyne.Position) ScrollTarget {
	if saved != nil {
		return ScrollTarget{Kind: ScrollRestore, Offset: *saved}
	}
	if to.Hash != "" {
		return ScrollTarget{Kind: ScrollToAnchor, Anchor: to.Hash}
	}
	if to.String() != from.String() {
		return ScrollTarget{Kind: ScrollToTop}
	}
	return ScrollTarget{Kind: ScrollKeep}
}

// PageFunc builds the content for a location. Anchors registers elements that
// a "#hash" can scroll to.
type PageFunc func(loc Location, anchors Anchors) fyne.CanvasObject

// Anchors collects named elements of the current page
type Anchors map[string]fyne.CanvasObject

type historyEntry struct {
	loc    Location
	offset fyne.Position
}

// Router swaps pages inside a scroll container and keeps back/forward history
type Router struct {
	mu       sync.Mutex
	routes   map[string]PageFunc
	scroll   *container.Scroll
	current  *historyEntry
	back     []historyEntry
	forward  []historyEntry
	anchors  Anchors
	last     ScrollTarget
	onChange func(Location)
}

// NewRouter creates a router with the given routes
func NewRouter(routes map[string]PageFunc) *Router {
	return &Router{
		routes: routes,
		// Scroll needs content for MinSize before the first page renders
		scroll: container.NewVScroll(container.NewStack()),
	}
}

// Container returns the scroll container hosting the pages
func (r *Router) Container() *container.Scroll {
	return r.scroll
}

// SetOnChange registers a callback invoked after every navigation
func (r *Router) SetOnChange(fn func(Location)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onChange = fn
}

// Current returns the location being shown
func (r *Router) Current() Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return Location{}
	}
	return r.current.loc
}

// LastScroll returns the scroll decision of the last navigation
func (r *Router) LastScroll() ScrollTarget {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// CanGoBack reports whether Back has somewhere to go
func (r *Router) CanGoBack() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.back) > 0
}

// CanGoForward reports whether Forward has somewhere to go
func (r *Router) CanGoForward() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.forward) > 0
}

// Push navigates to loc and records the current page in history
func (r *Router) Push(loc Location) error {
	r.mu.Lock()
	if _, ok := r.routes[loc.Path]; !ok {
		r.mu.Unlock()
		return fmt.Errorf("unknown route: %s", loc.Path)
	}

	from := Location{}
	if r.current != nil {
		r.current.offset = r.scroll.Offset
		from = r.current.loc
		r.back = append(r.back, *r.current)
	}
	r.forward = nil
	r.current = &historyEntry{loc: loc}
	r.mu.Unlock()

	r.render(loc, from, nil)
	return nil
}

// Replace re-renders loc without adding a history entry
func (r *Router) Replace(loc Location) error {
	r.mu.Lock()
	if _, ok := r.routes[loc.Path]; !ok {
		r.mu.Unlock()
		return fmt.Errorf("unknown route: %s", loc.Path)
	}

	from := Location{}
	if r.current != nil {
		from = r.current.loc
	}
	r.current = &historyEntry{loc: loc}
	r.mu.Unlock()

	r.render(loc, from, nil)
	return nil
}

// Back returns to the previous page and restores its scroll offset
func (r *Router) Back() bool {
	r.mu.Lock()
	if len(r.back) == 0 || r.current == nil {
		r.mu.Unlock()
		return false
	}
	prev := r.back[len(r.back)-1]
	r.back = r.back[:len(r.back)-1]
	r.current.offset = r.scroll.Offset
	r.forward = append(r.forward, *r.current)
	from := r.current.loc
	r.current = &historyEntry{loc: prev.loc, offset: prev.offset}
	r.mu.Unlock()

	r.render(prev.loc, from, &prev.offset)
	return true
}

// Forward re-visits the page left by Back
func (r *Router) Forward() bool {
	r.mu.Lock()
	if len(r.forward) == 0 || r.current == nil {
		r.mu.Unlock()
		return false
	}
	next := r.forward[len(r.forward)-1]
	r.forward = r.forward[:len(r.forward)-1]
	r.current.offset = r.scroll.Offset
	r.back = append(r.back, *r.current)
	from := r.current.loc
	r.current = &historyEntry{loc: next.loc, offset: next.offset}
	r.mu.Unlock()

	r.render(next.loc, from, &next.offset)
	return true
}

// Refresh rebuilds the current page in place, keeping the scroll offset
func (r *Router) Refresh() {
	loc := r.Current()
	if loc.Path == "" {
		return
	}
	offset := r.scroll.Offset
	r.render(loc, loc, &offset)
}

func (r *Router) render(to, from Location, saved *fyne.Position) {
	r.mu.Lock()
	build := r.routes[to.Path]
	anchors := Anchors{}
	r.mu.Unlock()

	content := build(to, anchors)

	r.mu.Lock()
	r.anchors = anchors
	target := ScrollBehavior(to, from, saved)
	r.last = target
	onChange := r.onChange
	r.mu.Unlock()

	r.scroll.Content = content
	r.scroll.Refresh()
	// anchors need a laid out page for their positions
	if r.applyScroll(target, anchors) {
		r.scroll.Refresh()
	}

	if onChange != nil {
		onChange(to)
	}
}

// applyScroll moves the offset and reports whether it changed anything
func (r *Router) applyScroll(target ScrollTarget, anchors Anchors) bool {
	switch target.Kind {
	case ScrollRestore:
		r.scroll.Offset = target.Offset
	case ScrollToAnchor:
		obj, ok := anchors[target.Anchor]
		if !ok || obj == nil {
			return false
		}
		r.scroll.Offset = fyne.NewPos(0, anchorOffset(r.scroll.Content, obj))
	case ScrollToTop:
		r.scroll.Offset = fyne.NewPos(0, 0)
	default:
		return false
	}
	return true
}

// anchorOffset returns obj's vertical position inside root, or 0 if not found
func anchorOffset(root, obj fyne.CanvasObject) float32 {
	if y, ok := findOffset(root, obj, 0); ok {
		return y
	}
	return 0
}

func findOffset(node, target fyne.CanvasObject, base float32) (float32, bool) {
	if node == target {
		return base, true
	}
	c, ok := node.(*fyne.Container)
	if !ok {
		return 0, false
	}
	for _, child := range c.Objects {
		if y, found := findOffset(child, target, base+child.Position().Y); found {
			return y, true
		}
	}
	return 0, false
}
