package sortpca

// NoiseLabel marks points that belong to no cluster.
const NoiseLabel = -1

// DBSCAN density-clusters 2-D points. It returns one label per point:
// clusters are numbered from 0 in discovery order and NoiseLabel marks
// unclustered points. eps is the neighborhood radius; minPts is the minimum
// neighborhood size (the point itself counts) for a core point.
func DBSCAN(pts [][2]float64, eps float64, minPts int) []int {
	labels := make([]int, len(pts))
	for i := range labels {
		labels[i] = NoiseLabel
	}
	visited := make([]bool, len(pts))

	next := 0
	for i := range pts {
		if visited[i] {
			continue
		}
		visited[i] = true
		nb := neighbors(pts, i, eps)
		if len(nb) < minPts {
			continue // noise, unless a later cluster claims it as border
		}
		c := next
		next++
		labels[i] = c

		// Expand the cluster over the density-reachable set.
		queue := nb
		for qi := 0; qi < len(queue); qi++ {
			j := queue[qi]
			if !visited[j] {
				visited[j] = true
				if nb2 := neighbors(pts, j, eps); len(nb2) >= minPts {
					queue = append(queue, nb2...)
				}
			}
			if labels[j] == NoiseLabel {
				labels[j] = c
			}
		}
	}
	return labels
}

func neighbors(pts [][2]float64, i int, eps float64) []int {
	var nb []int
	for j := range pts {
		dx := pts[i][0] - pts[j][0]
		dy := pts[i][1] - pts[j][1]
		if dx*dx+dy*dy <= eps*eps {
			nb = append(nb, j)
		}
	}
	return nb
}
