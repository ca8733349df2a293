package content

import (
	"strings"
	"testing"
)

func samplePosts() []Post {
	return []Post{
		{Slug: "newest", Title: "Kernel Exploitation", Date: "2024-03-01", Excerpt: "Ring zero", Content: "SMEP and SMAP", Tags: []string{"ctf", "pwn"}},
		{Slug: "middle", Title: "Web Fuzzing", Date: "2024-02-01", Excerpt: "Finding bugs", Content: "ffuf wordlists", Tags: []string{"CTF", "web"}},
		{Slug: "oldest", Title: "Android RE", Date: "2024-01-01", Excerpt: "Static analysis", Content: "jadx and frida", Tags: []string{"mobile"}},
	}
}

func slugs(posts []Post) string {
	var s []string
	for _, p := range posts {
		s = append(s, p.Slug)
	}
	return strings.Join(s, ",")
}

func TestByTagCaseInsensitive(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"ctf", "newest,middle"},
		{"CTF", "newest,middle"},
		{"web", "middle"},
		{"missing", ""},
		{"pw", ""},
		{" ctf ", ""},
	}
	for _, tt := range tests {
		got := slugs(ByTag(samplePosts(), tt.tag))
		if got != tt.want {
			t.Errorf("ByTag(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestByTagDoesNotTrim(t *testing.T) {
	posts := []Post{{Slug: "padded", Tags: []string{" ctf "}}}
	if got := slugs(ByTag(posts, "ctf")); got != "" {
		t.Errorf("ByTag(padded, %q) = %q, want none", "ctf", got)
	}
	if got := slugs(ByTag(posts, " CTF ")); got != "padded" {
		t.Errorf("ByTag(padded, %q) = %q, want %q", " CTF ", got, "padded")
	}
}

func TestSearchFields(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"kernel", "newest"},          // title
		{"FINDING", "middle"},         // excerpt
		{"frida", "oldest"},           // content
		{"mob", "oldest"},             // tag substring
		{"ctf", "newest,middle"},      // tag
		{"i", "newest,middle,oldest"}, // several fields
		{"nothing here", ""},
	}
	for _, tt := range tests {
		got := slugs(Search(samplePosts(), tt.query))
		if got != tt.want {
			t.Errorf("Search(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestSearchBlankIsIdentity(t *testing.T) {
	posts := samplePosts()
	for _, q := range []string{"", "   ", "\t\n"} {
		got := Search(posts, q)
		if slugs(got) != slugs(posts) {
			t.Errorf("Search(%q) = %q, want all posts", q, slugs(got))
		}
	}
}

func TestFilterComposition(t *testing.T) {
	posts := samplePosts()
	tests := []struct {
		query, tag string
		want       string
	}{
		{"", "", "newest,middle,oldest"},
		{"fuzz", "", "middle"},
		{"", "ctf", "newest,middle"},
		{"kernel", "ctf", "newest"},
		{"kernel", "web", ""},
		{" ", " ", "newest,middle,oldest"},
	}
	for _, tt := range tests {
		got := slugs(Filter(posts, tt.query, tt.tag))
		if got != tt.want {
			t.Errorf("Filter(%q, %q) = %q, want %q", tt.query, tt.tag, got, tt.want)
		}
	}
}

func TestQueriesDoNotMutateInput(t *testing.T) {
	posts := samplePosts()
	before := slugs(posts)
	_ = Filter(posts, "ctf", "pwn")
	_ = Related(posts[0], posts)
	_ = Paginate(posts, 2, 1)
	if slugs(posts) != before {
		t.Errorf("input mutated: %q, want %q", slugs(posts), before)
	}
}

func TestNeighbors(t *testing.T) {
	posts := samplePosts()

	adj := Neighbors(posts, "newest")
	if adj.Next != nil {
		t.Errorf("newest.Next = %v, want nil", adj.Next.Slug)
	}
	if adj.Previous == nil || adj.Previous.Slug != "middle" {
		t.Errorf("newest.Previous = %v, want middle", adj.Previous)
	}

	adj = Neighbors(posts, "middle")
	if adj.Previous == nil || adj.Previous.Slug != "oldest" {
		t.Errorf("middle.Previous = %v, want oldest", adj.Previous)
	}
	if adj.Next == nil || adj.Next.Slug != "newest" {
		t.Errorf("middle.Next = %v, want newest", adj.Next)
	}

	adj = Neighbors(posts, "oldest")
	if adj.Previous != nil {
		t.Errorf("oldest.Previous = %v, want nil", adj.Previous.Slug)
	}
	if adj.Next == nil || adj.Next.Slug != "middle" {
		t.Errorf("oldest.Next = %v, want middle", adj.Next)
	}

	adj = Neighbors(posts, "unknown")
	if adj.Previous != nil || adj.Next != nil {
		t.Errorf("unknown slug should have no neighbours, got %+v", adj)
	}
}

func TestNeighborsSinglePost(t *testing.T) {
	adj := Neighbors(samplePosts()[:1], "newest")
	if adj.Previous != nil || adj.Next != nil {
		t.Errorf("single post should have no neighbours, got %+v", adj)
	}
}

func TestRelated(t *testing.T) {
	posts := samplePosts()
	got := slugs(Related(posts[0], posts))
	if got != "middle" {
		t.Errorf("Related(newest) = %q, want %q", got, "middle")
	}
	if got := slugs(Related(posts[2], posts)); got != "" {
		t.Errorf("Related(oldest) = %q, want none", got)
	}
}

func TestTags(t *testing.T) {
	got := strings.Join(Tags(samplePosts()), ",")
	if got != "CTF,ctf,mobile,pwn,web" {
		t.Errorf("Tags = %q", got)
	}
	if tags := Tags(nil); tags == nil || len(tags) != 0 {
		t.Errorf("Tags(nil) = %#v, want empty slice", tags)
	}
}

func TestPaginate(t *testing.T) {
	posts := samplePosts()
	tests := []struct {
		page, per  int
		want       string
		number     int
		total      int
		prev, next bool
	}{
		{1, 2, "newest,middle", 1, 2, false, true},
		{2, 2, "oldest", 2, 2, true, false},
		{9, 2, "oldest", 2, 2, true, false},
		{0, 2, "newest,middle", 1, 2, false, true},
		{1, 0, "newest,middle,oldest", 1, 1, false, false},
	}
	for _, tt := range tests {
		p := Paginate(posts, tt.page, tt.per)
		if slugs(p.Posts) != tt.want || p.Number != tt.number || p.TotalPages != tt.total {
			t.Errorf("Paginate(%d, %d) = %q page %d/%d, want %q page %d/%d",
				tt.page, tt.per, slugs(p.Posts), p.Number, p.TotalPages, tt.want, tt.number, tt.total)
		}
		if p.HasPrev() != tt.prev || p.HasNext() != tt.next {
			t.Errorf("Paginate(%d, %d) prev/next = %v/%v, want %v/%v",
				tt.page, tt.per, p.HasPrev(), p.HasNext(), tt.prev, tt.next)
		}
	}
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate(nil, 3, 10)
	if p.Number != 1 || p.TotalPages != 1 || len(p.Posts) != 0 {
		t.Errorf("Paginate(nil) = %+v, want single empty page", p)
	}
}
