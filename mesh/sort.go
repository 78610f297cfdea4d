package mesh

import "sort"

func sortVertexKeys(keys []VertexKey) {
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
}

func sortFaceKeys(keys []FaceKey) {
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
}
