package service

import (
	"github.com/pkordes/tripweaver/internal/domain"
)

// recordKey identifies a saved record. The joined document key is not used
// because underscores in folder or attraction ids make it ambiguous.
type recordKey struct {
	user, folder, attraction string
}

// AggregateFolders groups flat saved-attraction records into folders.
//
// Folders appear in the order their name is first seen. Within a folder,
// attractions keep input order. Records sharing the (user, folder, attraction)
// key collapse into one: the last record wins but keeps the position of the
// first occurrence. LastModified is the latest LastModified of the folder's
// records. The function is pure; the same input always yields the same output.
func AggregateFolders(recs []domain.SavedAttraction) []domain.Folder {
	folders := []domain.Folder{}
	byName := map[string]int{}
	byKey := map[recordKey]int{}

	for _, rec := range recs {
		fi, ok := byName[rec.FolderName]
		if !ok {
			fi = len(folders)
			byName[rec.FolderName] = fi
			folders = append(folders, domain.Folder{Name: rec.FolderName, Attractions: []domain.Attraction{}})
		}
		f := &folders[fi]

		key := recordKey{user: rec.UserID, folder: rec.FolderName, attraction: rec.AttractionID}
		if at, seen := byKey[key]; seen {
			f.Attractions[at] = rec.Attraction.Clone()
		} else {
			byKey[key] = len(f.Attractions)
			f.Attractions = append(f.Attractions, rec.Attraction.Clone())
		}

		if rec.LastModified.After(f.LastModified) {
			f.LastModified = rec.LastModified
		}
	}

	for i := range folders {
		folders[i].Count = len(folders[i].Attractions)
	}
	return folders
}
