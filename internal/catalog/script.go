package catalog

import "time"

// Category identifies the role a script plays within a selling segment.
type Category string

const (
	CategoryHook  Category = "hook"
	CategoryLook  Category = "look"
	CategoryStory Category = "story"
	CategoryValue Category = "value"
	CategoryCTA   Category = "cta"
)

// Categories lists every script category in presentation order.
func Categories() []Category {
	return []Category{CategoryHook, CategoryLook, CategoryStory, CategoryValue, CategoryCTA}
}

// Valid reports whether the category is one of the known script roles.
func (c Category) Valid() bool {
	switch c {
	case CategoryHook, CategoryLook, CategoryStory, CategoryValue, CategoryCTA:
		return true
	}
	return false
}

// Script is one teleprompter script variant attached to a bag. Usage and like
// counters are owned by the store; the sync engine only reads content and
// asks the store to increment counters.
type Script struct {
	ID        int64
	BagID     int64
	Category  Category
	Content   string
	UsedCount int64
	LikeCount int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Block is one teleprompter page: the i-th script variant of each category,
// assembled side by side. Blocks are 1-indexed for the display.
type Block struct {
	ID    int    `json:"id"`
	Hook  string `json:"hook,omitempty"`
	Look  string `json:"look,omitempty"`
	Story string `json:"story,omitempty"`
	Value string `json:"value,omitempty"`
	CTA   string `json:"cta,omitempty"`
}

func (b *Block) set(category Category, content string) {
	switch category {
	case CategoryHook:
		b.Hook = content
	case CategoryLook:
		b.Look = content
	case CategoryStory:
		b.Story = content
	case CategoryValue:
		b.Value = content
	case CategoryCTA:
		b.CTA = content
	}
}

// Blocks groups scripts by category, preserving order within each category,
// and zips them into parallel variant blocks. The number of blocks equals the
// largest variant count across categories; categories with fewer variants
// leave their field empty in later blocks.
func Blocks(scripts []Script) []Block {
	byCategory := make(map[Category][]Script, len(Categories()))
	for _, s := range scripts {
		byCategory[s.Category] = append(byCategory[s.Category], s)
	}

	maxVariants := 0
	for _, group := range byCategory {
		if len(group) > maxVariants {
			maxVariants = len(group)
		}
	}

	blocks := make([]Block, 0, maxVariants)
	for i := 0; i < maxVariants; i++ {
		block := Block{ID: i + 1}
		for _, category := range Categories() {
			group := byCategory[category]
			if i < len(group) {
				block.set(category, group[i].Content)
			}
		}
		blocks = append(blocks, block)
	}
	return blocks
}
