package source

import "time"

// Board is the root of the kanban hierarchy.
type Board struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	Swimlanes   []*Swimlane
}

// Lists returns every list of the board in swimlane order.
func (b *Board) Lists() []*List {
	var out []*List
	for _, s := range b.Swimlanes {
		out = append(out, s.Lists...)
	}
	return out
}

// CardCount returns the number of cards on the board.
func (b *Board) CardCount() int {
	n := 0
	for _, l := range b.Lists() {
		n += len(l.Cards)
	}
	return n
}

// Swimlane groups lists horizontally on a board.
type Swimlane struct {
	ID       int64
	BoardID  int64
	Name     string
	Position int
	Lists    []*List
	Board    *Board
}

// List is a column of cards.
type List struct {
	ID         int64
	SwimlaneID int64
	Name       string
	Position   int
	Cards      []*Card
	Swimlane   *Swimlane
}

// Card is a single work item. Its export metadata is declared in struct
// tags.
type Card struct {
	ID          int64     `export:"name=id,position=0"`
	ListID      int64     `export:"-"`
	Title       string    `export:"name=title,groups=default|compact"`
	Description string    `export:"name=description,groups=default"`
	Position    int       `export:"name=position,groups=full"`
	CreatedAt   time.Time `export:"name=created_at,groups=default|full"`
	Attachment  []byte    `groups:"full"`
	List        *List     `export:"name=list,fields=name,groups=default|full"`
}

// Dataset is a fully linked set of boards.
type Dataset struct {
	Boards []*Board
}

// Link sets the parent pointers of every swimlane, list and card.
func (d *Dataset) Link() {
	for _, b := range d.Boards {
		for _, s := range b.Swimlanes {
			s.BoardID, s.Board = b.ID, b
			for _, l := range s.Lists {
				l.SwimlaneID, l.Swimlane = s.ID, s
				for _, c := range l.Cards {
					c.ListID, c.List = l.ID, l
				}
			}
		}
	}
}

// Items returns every object of the named type, in hierarchy order.
func (d *Dataset) Items(typeName string) ([]any, bool) {
	var out []any
	switch typeName {
	case TypeBoard:
		for _, b := range d.Boards {
			out = append(out, b)
		}
	case TypeSwimlane:
		for _, b := range d.Boards {
			for _, s := range b.Swimlanes {
				out = append(out, s)
			}
		}
	case TypeList:
		for _, b := range d.Boards {
			for _, l := range b.Lists() {
				out = append(out, l)
			}
		}
	case TypeCard:
		for _, b := range d.Boards {
			for _, l := range b.Lists() {
				for _, c := range l.Cards {
					out = append(out, c)
				}
			}
		}
	default:
		return nil, false
	}
	return out, true
}
