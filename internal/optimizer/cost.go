package optimizer

// workerCost is the cost of one worker carrying the given jobs: the total
// assigned size floor-divided by the worker's rate. A zero rate falls back to
// the plain sum so that a misconfigured worker cannot divide by zero.
func workerCost(rate int, jobs []int) int {
	total := 0
	for _, size := range jobs {
		total += size
	}
	if rate == 0 {
		return total
	}
	return total / rate
}

// totalCost sums workerCost over every worker and its assigned job list.
func totalCost(rates []int, jobLists [][]int) int {
	cost := 0
	for w, rate := range rates {
		cost += workerCost(rate, jobLists[w])
	}
	return cost
}

// decode translates a gene sequence into per-worker job-size lists. Every job
// index lands in exactly one worker's list, in job-index order.
func decode(genes []int, jobs []int, workerCount int) [][]int {
	lists := make([][]int, workerCount)
	for w := range lists {
		lists[w] = []int{}
	}
	for i, w := range genes {
		lists[w] = append(lists[w], jobs[i])
	}
	return lists
}

// evaluate is the fitness function the engine minimizes.
func evaluate(genes []int, jobs []int, rates []int) int {
	return totalCost(rates, decode(genes, jobs, len(rates)))
}
