package humastar

import (
	"fmt"
	"path"
	"slices"
	"sort"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// EntryPoint is the operation path that links to every collection.
const EntryPoint = "/health"

// Links holds RFC 8288 Link header values keyed by operation path.
type Links map[string][]string

// Add appends a link from one operation path to a target. Duplicates are
// ignored.
func (l Links) Add(from, to, rel string) {
	val := fmt.Sprintf(`<%s>; rel="%s"`, to, rel)
	if slices.Contains(l[from], val) {
		return
	}
	l[from] = append(l[from], val)
}

// AutoLinks derives navigation links from the registered routes. Paths
// carrying the skip tag (the SSE editor) are left out. Call after all
// routes are registered.
func AutoLinks(api huma.API, skipTag string) Links {
	oapi := api.OpenAPI()
	links := Links{}

	var collections, items []string
	for p, pi := range oapi.Paths {
		if skipTag != "" && slices.Contains(primaryTags(pi), skipTag) {
			continue
		}
		if strings.Contains(p, "{") {
			items = append(items, p)
		} else {
			collections = append(collections, p)
		}
	}
	sort.Strings(collections)
	sort.Strings(items)

	for _, item := range items {
		parent := path.Dir(item)
		if _, ok := oapi.Paths[parent]; ok {
			links.Add(item, parent, "collection")
			links.Add(item, parent, "up")
		}
		if pi := oapi.Paths[item]; pi.Put != nil || pi.Patch != nil {
			links.Add(item, item, "edit")
		}
	}

	for _, coll := range collections {
		for _, item := range items {
			if path.Dir(item) == coll {
				links.Add(coll, item, "item")
			}
		}
		if oapi.Paths[coll].Post != nil {
			links.Add(coll, coll, "create-form")
		}
		if coll != EntryPoint {
			links.Add(coll, EntryPoint, "up")
			links.Add(EntryPoint, coll, lastSegment(coll))
		}
	}

	links.Add(EntryPoint, "/openapi.json", "service-desc")
	links.Add(EntryPoint, "/docs", "service-doc")

	for p, pi := range oapi.Paths {
		headers, ok := links[p]
		if !ok {
			continue
		}
		for _, op := range operationsOf(pi) {
			if op != nil {
				injectResponseLinks(op, headers)
			}
		}
	}
	return links
}

// LinkTransformer returns a Huma Transformer that writes Link headers for
// the matched operation, a self link for item paths, and any pagination or
// action links the response body carries.
func LinkTransformer(links Links) huma.Transformer {
	return func(ctx huma.Context, status string, v any) (any, error) {
		op := ctx.Operation()
		if op == nil {
			return v, nil
		}

		for _, link := range links[op.Path] {
			ctx.AppendHeader("Link", link)
		}
		if strings.Contains(op.Path, "{") {
			ctx.AppendHeader("Link", fmt.Sprintf(`<%s>; rel="self"`, ctx.URL().Path))
		}
		if p, ok := v.(Pager); ok {
			for _, link := range p.PaginationLinks(ctx.URL().Path) {
				ctx.AppendHeader("Link", link)
			}
		}
		if a, ok := v.(Actor); ok {
			for _, action := range a.Actions() {
				ctx.AppendHeader("Link", action.LinkHeader())
			}
		}
		return v, nil
	}
}

func primaryTags(pi *huma.PathItem) []string {
	for _, op := range operationsOf(pi) {
		if op != nil && len(op.Tags) > 0 {
			return op.Tags
		}
	}
	return nil
}

func operationsOf(pi *huma.PathItem) []*huma.Operation {
	return []*huma.Operation{pi.Get, pi.Post, pi.Put, pi.Patch, pi.Delete}
}

func lastSegment(p string) string {
	return path.Base(strings.TrimRight(p, "/"))
}

// injectResponseLinks documents the links on the operation's success
// response in the OpenAPI document.
func injectResponseLinks(op *huma.Operation, headers []string) {
	var resp *huma.Response
	for code, r := range op.Responses {
		if strings.HasPrefix(code, "2") {
			resp = r
			break
		}
	}
	if resp == nil {
		return
	}
	if resp.Links == nil {
		resp.Links = map[string]*huma.Link{}
	}
	for _, h := range headers {
		rel, href := parseLinkHeader(h)
		if rel == "" {
			continue
		}
		resp.Links[rel] = &huma.Link{
			OperationRef: href,
			Description:  "Related: " + rel,
		}
	}
}

// parseLinkHeader splits `<url>; rel="name"`.
func parseLinkHeader(h string) (rel, href string) {
	target, params, ok := strings.Cut(h, ";")
	if !ok {
		return "", ""
	}
	href = strings.Trim(strings.TrimSpace(target), "<>")
	params = strings.TrimSpace(params)
	if r, ok := strings.CutPrefix(params, `rel="`); ok {
		rel, _, _ = strings.Cut(r, `"`)
	}
	return rel, href
}
