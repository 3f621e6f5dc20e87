package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sabor-go/internal/config"
	"sabor-go/internal/model"
)

// ESRecipeDoc ES 菜谱文档结构
type ESRecipeDoc struct {
	ID          int64    `json:"id"`
	AuthorID    int64    `json:"author_id"`
	AuthorName  string   `json:"author_name"`
	Name        string   `json:"name"`
	Text        string   `json:"text"`
	Tags        []string `json:"tags"`
	CookingTime int      `json:"cooking_time"`
	CreatedAt   string   `json:"created_at"`
}

func recipesIndexName() string {
	cfg := config.GetElasticsearch()
	indexName := cfg.Index["recipes"]
	if indexName == "" {
		indexName = "recipes"
	}
	return indexName
}

func recipeToESDoc(r *model.Recipe, authorName string) *ESRecipeDoc {
	tags := make([]string, 0, len(r.Tags))
	for i := range r.Tags {
		tags = append(tags, r.Tags[i].Slug)
	}
	return &ESRecipeDoc{
		ID:          r.ID,
		AuthorID:    r.AuthorID,
		AuthorName:  authorName,
		Name:        r.Name,
		Text:        r.Text,
		Tags:        tags,
		CookingTime: r.CookingTime,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
}

// SyncRecipe 同步单个菜谱到 ES
func SyncRecipe(ctx context.Context, r *model.Recipe, authorName string) error {
	doc := recipeToESDoc(r, authorName)
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	resp, err := Index(ctx, recipesIndexName(), fmt.Sprintf("%d", r.ID), bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("index recipe %d failed: %s", r.ID, resp.String())
	}
	return nil
}

// DeleteRecipe 从 ES 删除菜谱文档
func DeleteRecipe(ctx context.Context, recipeID int64) error {
	resp, err := Delete(ctx, recipesIndexName(), fmt.Sprintf("%d", recipeID))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// 文档不存在视为已删除
	if resp.IsError() && resp.StatusCode != 404 {
		return fmt.Errorf("delete recipe %d failed: %s", recipeID, resp.String())
	}
	return nil
}
