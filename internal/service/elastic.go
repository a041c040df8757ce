package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"wellnexus_back_end/internal/database"
	"wellnexus_back_end/internal/models"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

//
// --- ELASTICSEARCH INDEXING ---
//

// IndexProduct pushes a product document into the products index.
func IndexProduct(p models.Product) {
	if database.Elastic == nil {
		log.Println("⚠️ Elastic not initialized, cannot index:", p.Name)
		return
	}

	data, _ := json.Marshal(p)
	req := esapi.IndexRequest{
		Index:      "products",
		DocumentID: p.ID.String(),
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}

	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		log.Println("❌ Elastic request failed:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️ Elastic returned an error for %s: %s", p.Name, res.String())
	} else {
		log.Printf("✅ Product indexed in Elasticsearch: %s", p.Name)
	}
}

// IndexPractitioner pushes a verified practitioner into the practitioners
// index. Unverified profiles are never searchable.
func IndexPractitioner(p models.PractitionerProfile) {
	if database.Elastic == nil {
		log.Println("⚠️ Elastic not initialized, cannot index:", p.Name)
		return
	}
	if !p.Verified {
		return
	}

	data, _ := json.Marshal(p)
	req := esapi.IndexRequest{
		Index:      "practitioners",
		DocumentID: p.ID.String(),
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}

	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		log.Println("❌ Elastic request failed:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️ Elastic returned an error for %s: %s", p.Name, res.String())
	} else {
		log.Printf("✅ Practitioner indexed in Elasticsearch: %s", p.Name)
	}
}

//
// --- ELASTICSEARCH SEARCH ---
//

// SearchProducts matches on name, description, category and tags.
func SearchProducts(query string) ([]map[string]interface{}, error) {
	return search("products", query, []string{"name", "description", "category"})
}

// SearchPractitioners matches on name, specialization and bio.
func SearchPractitioners(query string) ([]map[string]interface{}, error) {
	return search("practitioners", query, []string{"name", "specialization", "bio"})
}

func search(index, query string, fields []string) ([]map[string]interface{}, error) {
	if database.Elastic == nil {
		return nil, errors.New("elasticsearch client not initialized")
	}

	var buf bytes.Buffer
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": fields,
			},
		},
	}

	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, fmt.Errorf("query encode failed: %v", err)
	}

	req := esapi.SearchRequest{
		Index: []string{index},
		Body:  &buf,
	}
	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		return nil, fmt.Errorf("elastic request failed: %v", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		var e map[string]interface{}
		json.NewDecoder(res.Body).Decode(&e)
		log.Printf("❌ Elasticsearch error: %+v", e)
		return nil, errors.New("index missing or empty")
	}

	var r map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("response decode failed: %v", err)
	}

	var results []map[string]interface{}
	hits, ok := r["hits"].(map[string]interface{})
	if !ok {
		return results, nil
	}
	for _, hit := range hits["hits"].([]interface{}) {
		if h, ok := hit.(map[string]interface{}); ok {
			if src, ok := h["_source"].(map[string]interface{}); ok {
				results = append(results, src)
			}
		}
	}
	return results, nil
}
