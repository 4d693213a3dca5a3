// Package drivertest provides a scripted in-memory driver.Session for tests
// that exercise page objects and scenarios without a browser.
package drivertest

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/adyen/shopcheck/internal/driver"
	"github.com/adyen/shopcheck/internal/locator"
)

// ErrNotInteractable is returned when clicking or typing into a hidden or
// disabled node
var ErrNotInteractable = errors.New("element not interactable")

// Node is a fake DOM node. Tests mutate nodes directly or from OnClick hooks.
type Node struct {
	Text     string
	Attrs    map[string]string
	Hidden   bool
	Disabled bool
	// PollsUntilVisible hides the node for that many wait polls
	PollsUntilVisible int
	OnClick           func()
	Children          map[locator.Locator]*Node

	Clicks int
	Typed  []string
}

// NewNode creates a visible node with the given text
func NewNode(text string) *Node {
	return &Node{Text: text, Attrs: map[string]string{}, Children: map[locator.Locator]*Node{}}
}

// WithAttr sets an attribute and returns the node
func (n *Node) WithAttr(name, value string) *Node {
	if n.Attrs == nil {
		n.Attrs = map[string]string{}
	}
	n.Attrs[name] = value
	return n
}

// WithChild registers a child node reachable through loc
func (n *Node) WithChild(loc locator.Locator, child *Node) *Node {
	if n.Children == nil {
		n.Children = map[locator.Locator]*Node{}
	}
	n.Children[loc] = child
	return n
}

func (n *Node) visible() bool {
	return !n.Hidden && n.PollsUntilVisible <= 0
}

// Session is a fake browser tab holding nodes keyed by locator
type Session struct {
	mu           sync.Mutex
	nodes        map[locator.Locator][]*Node
	title        string
	source       string
	PollInterval time.Duration
	OnReload     func()
	OnNavigate   func(url string)

	Navigations []string
	Reloads     int
	Waits       []Wait
	Closed      bool
}

// Wait records one WaitFor call
type Wait struct {
	Locator   locator.Locator
	Condition driver.Condition
	Timeout   time.Duration
}

var _ driver.Session = (*Session)(nil)

// NewSession creates an empty fake session
func NewSession() *Session {
	return &Session{nodes: make(map[locator.Locator][]*Node), PollInterval: time.Millisecond}
}

// Set replaces the nodes matching loc
func (s *Session) Set(loc locator.Locator, nodes ...*Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[loc] = nodes
}

// Remove deletes every node matching loc
func (s *Session) Remove(loc locator.Locator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.nodes, loc)
}

// Nodes returns the nodes currently matching loc
func (s *Session) Nodes(loc locator.Locator) []*Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nodes[loc]
}

// SetTitle sets the document title
func (s *Session) SetTitle(title string) {
	s.title = title
}

// SetSource sets the page source
func (s *Session) SetSource(source string) {
	s.source = source
}

func (s *Session) Navigate(url string) error {
	s.Navigations = append(s.Navigations, url)
	if s.OnNavigate != nil {
		s.OnNavigate(url)
	}
	return nil
}

func (s *Session) Reload() error {
	s.Reloads++
	if s.OnReload != nil {
		s.OnReload()
	}
	return nil
}

func (s *Session) Title() (string, error) {
	return s.title, nil
}

func (s *Session) PageSource() (string, error) {
	return s.source, nil
}

func (s *Session) Find(loc locator.Locator) (driver.Element, error) {
	nodes := s.Nodes(loc)
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: %s", driver.ErrElementNotFound, loc)
	}
	return &Element{node: nodes[0]}, nil
}

func (s *Session) FindAll(loc locator.Locator) ([]driver.Element, error) {
	nodes := s.Nodes(loc)
	elements := make([]driver.Element, len(nodes))
	for i, n := range nodes {
		elements[i] = &Element{node: n}
	}
	return elements, nil
}

func (s *Session) WaitFor(loc locator.Locator, cond driver.Condition, timeout time.Duration) (driver.Element, error) {
	s.Waits = append(s.Waits, Wait{Locator: loc, Condition: cond, Timeout: timeout})

	deadline := time.Now().Add(timeout)
	for {
		if n := s.poll(loc, cond); n != nil {
			return &Element{node: n}, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: %s not %s after %s", driver.ErrWaitTimeout, loc, cond, timeout)
		}
		time.Sleep(s.PollInterval)
	}
}

// poll evaluates cond once against the first node matching loc
func (s *Session) poll(loc locator.Locator, cond driver.Condition) *Node {
	s.mu.Lock()
	defer s.mu.Unlock()

	nodes := s.nodes[loc]
	if len(nodes) == 0 {
		return nil
	}
	n := nodes[0]
	if n.PollsUntilVisible > 0 {
		n.PollsUntilVisible--
	}
	switch cond {
	case driver.ConditionPresent:
		return n
	case driver.ConditionVisible:
		if n.visible() {
			return n
		}
	case driver.ConditionClickable:
		if n.visible() && !n.Disabled {
			return n
		}
	}
	return nil
}

func (s *Session) Close() error {
	s.Closed = true
	return nil
}

// Element is a handle to a fake node
type Element struct {
	node *Node
}

// Node returns the node behind the handle
func (e *Element) Node() *Node {
	return e.node
}

func (e *Element) Click() error {
	if !e.node.visible() || e.node.Disabled {
		return ErrNotInteractable
	}
	e.node.Clicks++
	if e.node.OnClick != nil {
		e.node.OnClick()
	}
	return nil
}

func (e *Element) SendKeys(text string) error {
	if !e.node.visible() || e.node.Disabled {
		return ErrNotInteractable
	}
	e.node.Typed = append(e.node.Typed, text)
	if e.node.Attrs == nil {
		e.node.Attrs = map[string]string{}
	}
	e.node.Attrs["value"] += text
	return nil
}

func (e *Element) Text() (string, error) {
	return e.node.Text, nil
}

func (e *Element) Attribute(name string) (string, error) {
	return e.node.Attrs[name], nil
}

func (e *Element) Find(loc locator.Locator) (driver.Element, error) {
	child, ok := e.node.Children[loc]
	if !ok {
		return nil, fmt.Errorf("%w: %s", driver.ErrElementNotFound, loc)
	}
	return &Element{node: child}, nil
}
