package services

// PickNumbers returns the lowest numbers in 1..totalTickets that are not live, stopping at quantity.
// A result shorter than quantity means the raffle cannot satisfy the request.
func PickNumbers(totalTickets int, live map[int]struct{}, quantity int) []int {
	if quantity <= 0 {
		return []int{}
	}

	picked := make([]int, 0, quantity)
	for number := 1; number <= totalTickets && len(picked) < quantity; number++ {
		if _, taken := live[number]; taken {
			continue
		}

		picked = append(picked, number)
	}

	return picked
}

func numberSet(numbers []int) map[int]struct{} {
	set := make(map[int]struct{}, len(numbers))
	for _, n := range numbers {
		set[n] = struct{}{}
	}

	return set
}
