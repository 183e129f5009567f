package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"lessonpress/internal/models"
	"lessonpress/internal/normalize"
)

// DemoLessonSlug is the slug of the lesson created by Seed.
const DemoLessonSlug = "welcome-to-lessonpress"

// demoBlock is one seeded block: its type, variant and canonical content.
type demoBlock struct {
	blockType  models.BlockType
	templateID string
	content    string
}

var demoBlocks = []demoBlock{
	{models.BlockTypeText, "heading_paragraph", `{"heading":"Welcome","text":"This lesson shows **every block type** the editor supports."}`},
	{models.BlockTypeStatement, "statement-c", `{"title":"Key idea","text":"Blocks are **templates** filled with content."}`},
	{models.BlockTypeQuote, "quote_a", `{"quote":"The best way to learn is to teach.","author":"Frank Oppenheimer","authorTitle":"Physicist"}`},
	{models.BlockTypeImage, "centered", `{"imageUrl":"https://images.example.com/classroom.jpg","imageTitle":"A classroom","altText":"Students at desks","alignment":"center"}`},
	{models.BlockTypeList, "numbered", `{"title":"Steps","items":["Pick a block","Choose a variant","Fill in the content"]}`},
	{models.BlockTypeTables, "striped", `{"caption":"Block families","columns":["Family","Examples"],"rows":[["Text","text, statement, quote"],["Media","image, video, audio"]]}`},
	{models.BlockTypeInteractive, "accordion", `{"title":"FAQ","items":[{"title":"Can I reorder blocks?","content":"Yes, drag them in the editor."}]}`},
	{models.BlockTypeDivider, "numbered_divider", `{"label":"Part two","number":2}`},
	{models.BlockTypeVideo, "video_with_caption", `{"videoUrl":"https://media.example.com/intro.mp4","title":"Intro","caption":"A short tour"}`},
	{models.BlockTypeAudio, "audio_player", `{"audioUrl":"https://media.example.com/intro.mp3","title":"Narration","fileName":"intro.mp3","fileSize":2621440}`},
	{models.BlockTypeYouTube, "youtube_with_caption", `{"url":"https://www.youtube.com/watch?v=dQw4w9WgXcQ","title":"Watch this","caption":"Optional viewing"}`},
	{models.BlockTypeLink, "link_card", `{"url":"https://example.com/reading","title":"Further reading","description":"Background material for this lesson."}`},
	{models.BlockTypePDF, "pdf_download", `{"pdfUrl":"https://media.example.com/handout.pdf","title":"Handout","fileName":"handout.pdf","fileSize":524288}`},
}

// Seed populates the database with a demo lesson containing one block of
// every type. It does nothing when the demo lesson already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM lessons WHERE slug = $1", DemoLessonSlug).Scan(&count); err != nil {
		return fmt.Errorf("seed check lessons: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	var lessonID string
	err = tx.QueryRow(`
		INSERT INTO lessons (title, slug, description)
		VALUES ($1, $2, $3)
		RETURNING id`,
		"Welcome to LessonPress", DemoLessonSlug, "A tour of every content block.",
	).Scan(&lessonID)
	if err != nil {
		return fmt.Errorf("seed insert lesson: %w", err)
	}

	n := normalize.New()
	for i, d := range demoBlocks {
		b := n.Normalize(d.blockType, normalize.Response{
			Content:    normalize.Structured(json.RawMessage(d.content)),
			TemplateID: d.templateID,
			Metadata:   map[string]any{"source": "seed"},
		})
		meta, err := json.Marshal(b.Metadata)
		if err != nil {
			return fmt.Errorf("seed marshal metadata: %w", err)
		}
		_, err = tx.Exec(`
			INSERT INTO blocks (id, lesson_id, type, template_id, content, html, metadata, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			b.ID, lessonID, string(b.Type), b.TemplateID, string(b.Content), b.HTML, string(meta), i,
		)
		if err != nil {
			return fmt.Errorf("seed insert %s block: %w", d.blockType, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with demo lesson", "slug", DemoLessonSlug, "blocks", len(demoBlocks))
	return nil
}
