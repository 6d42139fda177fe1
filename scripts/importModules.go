package main

import (
	"encoding/csv"
	"log"
	"os"
	"strings"

	"tms/config"
	"tms/database"
	"tms/models/course"
)

// Imports modules from Modules.csv into their courses. Expected
// headers: course_code, module_name, series_number, content,
// youtube_url, slide_url. Rows matching an existing module name in the
// same course update it; everything else inserts.
func main() {
	config.LoadConfig()
	database.ConnectDb()

	path := "Modules.csv"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}

	db := database.Database.Db
	inserted := 0
	updated := 0
	skipped := 0

	for i, row := range records[1:] {
		code := getField(row, headerIndex, "course_code")
		name := getField(row, headerIndex, "module_name")
		if code == "" || name == "" {
			log.Printf("Row %d missing course_code or module_name, skipping", i+2)
			skipped++
			continue
		}

		courseRec, err := course.FindCourseByCode(db, code)
		if err != nil {
			log.Printf("Row %d: course %q not found, skipping", i+2, code)
			skipped++
			continue
		}

		mod := course.Module{
			ModuleName:   name,
			ModuleType:   courseRec.Code,
			SeriesNumber: getField(row, headerIndex, "series_number"),
			Content:      getField(row, headerIndex, "content"),
			YoutubeURL:   getField(row, headerIndex, "youtube_url"),
			SlideURL:     getField(row, headerIndex, "slide_url"),
			CourseID:     &courseRec.ID,
		}

		var existing course.Module
		err = db.Where("course_id = ? AND module_name = ? AND is_deleted = ?", courseRec.ID, name, false).
			First(&existing).Error
		if err == nil {
			existing.SeriesNumber = mod.SeriesNumber
			existing.Content = mod.Content
			existing.YoutubeURL = mod.YoutubeURL
			existing.SlideURL = mod.SlideURL
			if err := db.Save(&existing).Error; err != nil {
				log.Printf("Row %d: update failed: %v", i+2, err)
				skipped++
				continue
			}
			updated++
			continue
		}

		if err := db.Create(&mod).Error; err != nil {
			log.Printf("Row %d: insert failed: %v", i+2, err)
			skipped++
			continue
		}
		inserted++
	}

	log.Printf("Import complete: %d inserted, %d updated, %d skipped", inserted, updated, skipped)
}

func getField(row []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
