package store

// Asset references are dereferenced inline so the renderer sees URLs.

const libraryPostsQuery = `*[_type == "post"] | order(publishedAt desc) {
  _id,
  title,
  slug,
  image { asset->{ url } },
  body[]{
    ...,
    asset->{ _id, url },
    _type == "carousel" => {
      _type,
      slides[] { asset->{ _id, url } }
    }
  },
  tags,
  publishedAt
}`

const categoryPostsQuery = `*[_type == "post" && defined(category)]{
  _id,
  title,
  slug,
  category,
  categoryWeight
}`

const postBySlugQuery = `*[_type == "post" && slug.current == $slug][0]{
  _id,
  title,
  slug,
  image { asset->{ url } },
  body[]{
    ...,
    _type == "carousel" => {
      _type,
      slides[]{ asset->{ _id, url } }
    },
    _type == "image" => {
      _type,
      asset->{ _id, url },
      alt
    },
    _type == "fileAttachment" => {
      _type,
      description,
      file{
        asset->{ _id, url, mimeType, originalFilename }
      }
    }
  },
  tags,
  author,
  publishedAt
}`
