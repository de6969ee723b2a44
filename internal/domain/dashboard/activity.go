package dashboard

// 活跃度分档（按客户累计订单数）
var activityLevels = []struct {
	name     string
	min, max int64 // max<0 表示无上限
}{
	{"No Orders", 0, 0},
	{"1 Order", 1, 1},
	{"2-5 Orders", 2, 5},
	{"6-10 Orders", 6, 10},
	{"10+ Orders", 11, -1},
}

// BucketActivity 将每个客户的订单数归入活跃度分档，返回所有分档（包括0人的）
func BucketActivity(orderCounts []int64) []ActivityBucket {
	out := make([]ActivityBucket, len(activityLevels))
	for i, lv := range activityLevels {
		out[i].Level = lv.name
	}
	for _, n := range orderCounts {
		for i, lv := range activityLevels {
			if n >= lv.min && (lv.max < 0 || n <= lv.max) {
				out[i].CustomerCount++
				break
			}
		}
	}
	return out
}
